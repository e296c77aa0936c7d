package ports

import "time"

// TickTarget receives one callback per host tick.
//
//go:generate go run go.uber.org/mock/mockgen -source=ticker.go -destination=mocks/mock_ticker.go -package=mocks
type TickTarget interface {
	// Update is called once per tick. It must never block.
	Update(dt time.Duration)
}

// Ticker is the host tick source that process tasks subscribe to while running.
type Ticker interface {
	// Register adds target to the tick set. Registering an already registered target is a no-op.
	Register(target TickTarget)
	// Unregister removes target. It takes effect immediately, even during a tick.
	Unregister(target TickTarget)
}
