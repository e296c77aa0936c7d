package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ptask/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/ptask/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/ptask/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/ptask/internal/adapters/settings"           //nolint:depguard // Wired in app layer
	"go.trai.ch/ptask/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/ptask/internal/adapters/ticker"             //nolint:depguard // Wired in app layer
	"go.trai.ch/ptask/internal/core/ports"
	"go.trai.ch/ptask/internal/engine/task"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			task.NodeID,
			ticker.NodeID,
			cas.NodeID,
			progrock.NodeID,
			logger.NodeID,
			settings.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			cas.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[*task.Registry](ctx)
	if err != nil {
		return nil, err
	}

	loop, err := graft.Dep[*ticker.Loop](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ResultStore](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
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

	return New(loader, registry, loop, store, telemetry, log, cfg), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ResultStore](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
		Store:  store,
	}, nil
}
