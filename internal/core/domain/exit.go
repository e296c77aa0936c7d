package domain

import (
	"errors"
	"syscall"
)

const (
	// ResultStopped is the result code recorded when a task is force-terminated.
	ResultStopped = -1
	// ResultLaunchFailed is the result code recorded when a task fails to launch.
	ResultLaunchFailed = -1
	// ResultUnknownError is recorded when a polling failure carries no OS error code.
	ResultUnknownError = -1
)

// ExitStatus is the outcome of a non-blocking exit poll.
type ExitStatus struct {
	Exited bool
	Code   int
}

// StillRunning is the ExitStatus of a process that has not exited yet.
var StillRunning = ExitStatus{}

// Exited builds the ExitStatus of a process that exited with code.
func Exited(code int) ExitStatus {
	return ExitStatus{Exited: true, Code: code}
}

// ErrnoCode extracts the OS error number carried by err.
// It returns ResultUnknownError when err carries none.
func ErrnoCode(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return ResultUnknownError
}
