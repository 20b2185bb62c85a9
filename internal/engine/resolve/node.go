package resolve

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/depvet/depvet/internal/adapters/catalog"    //nolint:depguard // Wired in engine wiring
	"github.com/depvet/depvet/internal/adapters/logger"     //nolint:depguard // Wired in engine wiring
	"github.com/depvet/depvet/internal/adapters/manifest"   //nolint:depguard // Wired in engine wiring
	"github.com/depvet/depvet/internal/adapters/registry"   //nolint:depguard // Wired in engine wiring
	"github.com/depvet/depvet/internal/adapters/shell"      //nolint:depguard // Wired in engine wiring
	"github.com/depvet/depvet/internal/adapters/telemetry"  //nolint:depguard // Wired in engine wiring
	"github.com/depvet/depvet/internal/adapters/workspaces" //nolint:depguard // Wired in engine wiring
	"github.com/depvet/depvet/internal/core/ports"
)

// NodeID is the unique identifier for the resolve engine Graft node.
const NodeID graft.ID = "engine.resolve"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			catalog.NodeID,
			registry.NodeID,
			manifest.NodeID,
			shell.NodeID,
			workspaces.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			cat, err := graft.Dep[ports.Catalog](ctx)
			if err != nil {
				return nil, err
			}

			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			lister, err := graft.Dep[ports.DependencyLister](ctx)
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

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewEngine(
				cat,
				reg,
				store,
				lister,
				members,
				log,
				tracer,
			), nil
		},
	})
}
