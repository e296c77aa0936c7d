// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ptask/internal/adapters/cas"
	_ "go.trai.ch/ptask/internal/adapters/config"
	_ "go.trai.ch/ptask/internal/adapters/logger"
	_ "go.trai.ch/ptask/internal/adapters/process"
	_ "go.trai.ch/ptask/internal/adapters/settings"
	_ "go.trai.ch/ptask/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/ptask/internal/adapters/ticker"
	// Register app and engine nodes.
	_ "go.trai.ch/ptask/internal/app"
	_ "go.trai.ch/ptask/internal/engine/task"
)
