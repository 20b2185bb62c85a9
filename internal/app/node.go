package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/depvet/depvet/internal/adapters/detect"     //nolint:depguard // Wired in app layer
	"github.com/depvet/depvet/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"github.com/depvet/depvet/internal/adapters/manifest"   //nolint:depguard // Wired in app layer
	"github.com/depvet/depvet/internal/adapters/workspaces" //nolint:depguard // Wired in app layer
	"github.com/depvet/depvet/internal/core/ports"
	"github.com/depvet/depvet/internal/engine/resolve"
)

// NodeID is the unique identifier for the main App Graft node.
const NodeID graft.ID = "app.main"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			resolve.NodeID,
			detect.NodeID,
			manifest.NodeID,
			workspaces.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			engine, err := graft.Dep[*resolve.Engine](ctx)
			if err != nil {
				return nil, err
			}

			detector, err := graft.Dep[ports.AgentDetector](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			members, err := graft.Dep[ports.WorkspaceLister](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(engine, detector, store, members, log), nil
		},
	})
}
