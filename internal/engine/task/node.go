package task

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ptask/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ptask/internal/adapters/process"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ptask/internal/adapters/settings" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ptask/internal/adapters/ticker"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ptask/internal/core/ports"
)

// NodeID is the unique identifier for the task registry Graft node.
const NodeID graft.ID = "engine.task_registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			process.NodeID,
			ticker.NodeID,
			logger.NodeID,
			settings.NodeID,
		},
		Run: func(ctx context.Context) (*Registry, error) {
			host, err := graft.Dep[ports.ProcessHost](ctx)
			if err != nil {
				return nil, err
			}

			loop, err := graft.Dep[*ticker.Loop](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return NewRegistry(host, loop, log, WithMaxCommandLine(cfg.MaxCommandLine)), nil
		},
	})
}
