package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of process tasks.
type Telemetry interface {
	// Record starts tracking a task and returns the vertex that represents it.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and releases the underlying recorder.
	Close() error
}

// Vertex represents one task in the progress view.
type Vertex interface {
	// Stdout returns a writer that receives the task output.
	Stdout() io.Writer
	// Complete marks the vertex finished. A nil err means success.
	Complete(err error)
}
