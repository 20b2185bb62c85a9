package workspaces

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/depvet/depvet/internal/adapters/manifest"
	"github.com/depvet/depvet/internal/core/ports"
)

const NodeID graft.ID = "adapter.workspaces"

func init() {
	graft.Register(graft.Node[ports.WorkspaceLister]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{manifest.NodeID},
		Run: func(ctx context.Context) (ports.WorkspaceLister, error) {
			store, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(store), nil
		},
	})
}
