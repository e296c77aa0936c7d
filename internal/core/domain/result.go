package domain

import "time"

// TaskResult is the persisted record of a completed task.
type TaskResult struct {
	RunID        string    `json:"run_id,omitzero"`
	TaskName     string    `json:"task_name,omitzero"`
	CommandLine  string    `json:"command_line,omitzero"`
	ResultCode   int       `json:"result_code"`
	Stopped      bool      `json:"stopped,omitzero"`
	OutputDigest string    `json:"output_digest,omitzero"`
	OutputSize   int       `json:"output_size,omitzero"`
	StartedAt    time.Time `json:"started_at,omitzero"`
	FinishedAt   time.Time `json:"finished_at,omitzero"`
}

// NewTaskResult builds a result record from a completed task snapshot.
func NewTaskResult(runID string, info TaskInfo) TaskResult {
	return TaskResult{
		RunID:       runID,
		TaskName:    info.Name,
		CommandLine: info.CommandLine,
		ResultCode:  info.ResultCode,
		Stopped:     info.Stopped,
		OutputSize:  info.OutputSize,
		StartedAt:   info.StartedAt,
		FinishedAt:  info.FinishedAt,
	}
}
