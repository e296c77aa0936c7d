package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when attempting to create a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrTaskNotFound is returned when a requested task is not registered.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrTaskNotIdle is reported when launching a task that was already launched.
	ErrTaskNotIdle = zerr.New("task is not idle")

	// ErrEmptyExecutable is returned when a task has no executable path.
	ErrEmptyExecutable = zerr.New("executable path is empty")

	// ErrInvalidExecutable is returned when an executable path cannot be quoted safely.
	ErrInvalidExecutable = zerr.New("executable path contains a double quote")

	// ErrCommandLineTooLong is returned when the quoted path plus arguments exceed the length limit.
	ErrCommandLineTooLong = zerr.New("command line too long")

	// ErrExecutableNotFound is returned when the executable cannot be located or is not executable.
	ErrExecutableNotFound = zerr.New("executable not found")

	// ErrPipeCreate is returned when an anonymous pipe cannot be created.
	ErrPipeCreate = zerr.New("failed to create pipe")

	// ErrInheritance is returned when a pipe end's inheritance flag cannot be configured.
	ErrInheritance = zerr.New("failed to configure handle inheritance")

	// ErrSpawn is returned when the child process cannot be started.
	ErrSpawn = zerr.New("failed to spawn process")

	// ErrHandleClosed is returned when operating on a handle that was already released.
	ErrHandleClosed = zerr.New("handle already closed")

	// ErrManifestInvalid is returned when a task manifest fails validation.
	ErrManifestInvalid = zerr.New("invalid task manifest")

	// ErrNoTasks is returned when a run selects no tasks.
	ErrNoTasks = zerr.New("no tasks to run")

	// ErrTasksFailed is returned when one or more tasks did not complete with exit code 0.
	ErrTasksFailed = zerr.New("one or more tasks failed")
)
