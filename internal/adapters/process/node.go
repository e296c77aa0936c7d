package process

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ptask/internal/adapters/logger"
	"go.trai.ch/ptask/internal/core/ports"
)

// NodeID is the unique identifier for the process host Graft node.
const NodeID graft.ID = "adapter.process_host"

func init() {
	graft.Register(graft.Node[ports.ProcessHost]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProcessHost, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewHost(log), nil
		},
	})
}
