package domain

import "fmt"

// TaskState represents the lifecycle state of a process task.
type TaskState int

const (
	// StateIdle indicates the task has been created but not launched.
	StateIdle TaskState = iota
	// StateRunning indicates the child process is alive and being polled.
	StateRunning
	// StateCompleted indicates the task finished, was stopped, or failed to launch.
	// It is terminal.
	StateCompleted
)

// String returns a human-readable state name.
func (s TaskState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// IsTerminal reports whether no further transition can leave the state.
func (s TaskState) IsTerminal() bool {
	return s == StateCompleted
}

// CanTransition reports whether the task state machine allows moving from s to next.
func (s TaskState) CanTransition(next TaskState) bool {
	switch s {
	case StateIdle:
		return next == StateRunning || next == StateCompleted
	case StateRunning:
		return next == StateCompleted
	default:
		return false
	}
}
