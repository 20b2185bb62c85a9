package ports

import (
	"context"

	"github.com/Masterminds/semver/v3"
)

// Registry resolves the actual published version behind a dependency spec.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// ResolveVersion resolves a spec such as "npm:leftpad-safe@^1" to the
	// highest published version satisfying it. A nil version with a nil error
	// means the registry knows the package but nothing satisfies the range.
	ResolveVersion(ctx context.Context, spec string) (*semver.Version, error)
}
