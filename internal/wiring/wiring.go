// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/depvet/depvet/internal/adapters/catalog"
	_ "github.com/depvet/depvet/internal/adapters/detect"
	_ "github.com/depvet/depvet/internal/adapters/logger"
	_ "github.com/depvet/depvet/internal/adapters/manifest"
	_ "github.com/depvet/depvet/internal/adapters/registry"
	_ "github.com/depvet/depvet/internal/adapters/shell"
	_ "github.com/depvet/depvet/internal/adapters/telemetry"
	_ "github.com/depvet/depvet/internal/adapters/workspaces"
	// Register app and engine nodes.
	_ "github.com/depvet/depvet/internal/app"
	_ "github.com/depvet/depvet/internal/engine/resolve"
)
