package task

import (
	"errors"

	"go.trai.ch/ptask/internal/core/ports"
)

// guard owns one OS resource and releases it at most once.
type guard[T interface{ Close() error }] struct {
	value T
	held  bool
}

func (g *guard[T]) set(v T) {
	g.value = v
	g.held = true
}

func (g *guard[T]) get() (T, bool) {
	return g.value, g.held
}

// release closes the resource and resets the guard to absent.
func (g *guard[T]) release() error {
	if !g.held {
		return nil
	}
	v := g.value
	var zero T
	g.value = zero
	g.held = false
	return v.Close()
}

// resources groups every OS resource a running task holds.
type resources struct {
	process     guard[ports.Process]
	stdoutRead  guard[ports.ReadEnd]
	stdoutWrite guard[ports.WriteEnd]
	stdinRead   guard[ports.ReadEnd]
	stdinWrite  guard[ports.WriteEnd]
	buf         []byte
}

// holding reports whether at least one resource is still held.
func (r *resources) holding() bool {
	return r.process.held ||
		r.stdoutRead.held || r.stdoutWrite.held ||
		r.stdinRead.held || r.stdinWrite.held ||
		r.buf != nil
}

// release frees everything held, process first, and joins the close errors.
func (r *resources) release() error {
	err := errors.Join(
		r.process.release(),
		r.stdoutRead.release(),
		r.stdoutWrite.release(),
		r.stdinRead.release(),
		r.stdinWrite.release(),
	)
	r.buf = nil
	return err
}
