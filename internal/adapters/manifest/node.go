package manifest

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/depvet/depvet/internal/core/ports"
)

// NodeID is the unique identifier for the manifest store adapter Graft node.
const NodeID graft.ID = "adapter.manifest_store"

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestStore, error) {
			return NewStore(), nil
		},
	})
}
