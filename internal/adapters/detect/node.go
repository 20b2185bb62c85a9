package detect

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/depvet/depvet/internal/core/ports"
)

const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[ports.AgentDetector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AgentDetector, error) {
			return NewDetector(), nil
		},
	})
}
