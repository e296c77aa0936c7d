// Package ticker provides the host tick source process tasks subscribe to.
package ticker

import (
	"context"
	"slices"
	"time"

	"go.trai.ch/ptask/internal/core/ports"
)

// Loop is a ports.Ticker that invokes every registered target once per Tick,
// sequentially and in registration order.
//
// Loop is not safe for concurrent use; all calls, including Tick, belong on the host goroutine.
type Loop struct {
	targets []ports.TickTarget
	now     func() time.Time
}

// New creates an empty Loop.
func New() *Loop {
	return &Loop{now: time.Now}
}

// Register adds target. Registering a target twice has no effect.
func (l *Loop) Register(target ports.TickTarget) {
	if slices.Contains(l.targets, target) {
		return
	}
	l.targets = append(l.targets, target)
}

// Unregister removes target. A target removed during a tick is not called again,
// not even later in that same tick.
func (l *Loop) Unregister(target ports.TickTarget) {
	i := slices.Index(l.targets, target)
	if i < 0 {
		return
	}
	// A fresh slice keeps any in-flight Tick iterating over its own snapshot.
	l.targets = slices.Delete(slices.Clone(l.targets), i, i+1)
}

// Len returns the number of registered targets.
func (l *Loop) Len() int {
	return len(l.targets)
}

// Tick calls Update(dt) on every registered target.
func (l *Loop) Tick(dt time.Duration) {
	snapshot := l.targets
	for _, target := range snapshot {
		if !slices.Contains(l.targets, target) {
			continue
		}
		target.Update(dt)
	}
}

// Run ticks every interval with the measured delta until ctx is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	return l.RunUntil(ctx, interval, func() bool { return false })
}

// RunUntil ticks every interval until done reports true after a tick, or ctx is done.
func (l *Loop) RunUntil(ctx context.Context, interval time.Duration, done func() bool) error {
	if done() {
		return nil
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	last := l.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			now := l.now()
			l.Tick(now.Sub(last))
			last = now
			if done() {
				return nil
			}
		}
	}
}
