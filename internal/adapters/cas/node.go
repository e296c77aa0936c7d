package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ptask/internal/adapters/settings"
	"go.trai.ch/ptask/internal/core/ports"
)

// NodeID is the unique identifier for the result store Graft node.
const NodeID graft.ID = "adapter.result_store"

func init() {
	graft.Register(graft.Node[ports.ResultStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.ResultStore, error) {
			cfg, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			store, err := NewStore(cfg.ResultsPath, cfg.CASDir)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
