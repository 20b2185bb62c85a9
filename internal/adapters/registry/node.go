package registry

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/depvet/depvet/internal/core/ports"
)

// NodeID is the unique identifier for the registry adapter Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Registry, error) {
			return NewClient(), nil
		},
	})
}
