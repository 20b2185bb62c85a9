package shell

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/depvet/depvet/internal/adapters/logger"
	"github.com/depvet/depvet/internal/core/ports"
)

const NodeID graft.ID = "adapter.lister"

func init() {
	graft.Register(graft.Node[ports.DependencyLister]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.DependencyLister, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLister(log), nil
		},
	})
}
