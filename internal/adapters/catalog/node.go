package catalog

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/depvet/depvet/internal/core/ports"
)

// NodeID is the unique identifier for the catalog adapter Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[ports.Catalog]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Catalog, error) {
			c, err := New()
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	})
}
