// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/ptask/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks

// ProcessHost provides the OS primitives a process task is built on.
type ProcessHost interface {
	// CreatePipe creates an anonymous pipe. Neither end is inheritable until configured.
	CreatePipe() (ReadEnd, WriteEnd, error)

	// Spawn starts the child described by cmd with stdin connected to stdin and
	// both stdout and stderr connected to stdout. Only ends marked inheritable
	// are handed to the child.
	Spawn(cmd domain.CommandLine, stdin ReadEnd, stdout WriteEnd) (Process, error)
}

// Handle is an OS handle owned by exactly one holder.
type Handle interface {
	// SetInheritable controls whether the handle is passed on to spawned children.
	SetInheritable(inherit bool) error
	// Close releases the handle. Closing twice returns domain.ErrHandleClosed.
	Close() error
}

// ReadEnd is the reading side of a pipe.
type ReadEnd interface {
	Handle
	// Available reports how many bytes can be read without blocking.
	Available() (int, error)
	// Read reads at most len(p) bytes. Callers must not ask for more than Available reported.
	Read(p []byte) (int, error)
}

// WriteEnd is the writing side of a pipe.
type WriteEnd interface {
	Handle
}

// Process is a handle to a spawned child.
type Process interface {
	// Pid returns the OS process id.
	Pid() int
	// Poll checks for exit without blocking.
	Poll() (domain.ExitStatus, error)
	// Terminate kills the child immediately.
	Terminate() error
	// Close releases the process handles.
	Close() error
}
