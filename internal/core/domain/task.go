package domain

import "time"

// TaskInfo is a point-in-time snapshot of a process task.
type TaskInfo struct {
	Name        string
	CommandLine string
	State       TaskState
	Pid         int
	ResultCode  int
	HasResult   bool
	Stopped     bool
	OutputSize  int
	StartedAt   time.Time
	FinishedAt  time.Time
	LaunchError error
}

// Succeeded reports whether the task completed with exit code 0.
func (i TaskInfo) Succeeded() bool {
	return i.State == StateCompleted && i.HasResult && i.ResultCode == 0
}

// Duration returns how long the task ran. It is zero until the task has started and finished.
func (i TaskInfo) Duration() time.Duration {
	if i.StartedAt.IsZero() || i.FinishedAt.IsZero() {
		return 0
	}
	return i.FinishedAt.Sub(i.StartedAt)
}
