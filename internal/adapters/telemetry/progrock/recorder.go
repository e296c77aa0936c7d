// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/ptask/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w       progrock.Writer
	rec     *progrock.Recorder
	session string
}

// New creates a new Recorder with a default tape.
func New(session string) *Recorder {
	return NewRecorder(progrock.NewTape(), session)
}

// NewRecorder creates a new Recorder with the given writer.
// Vertex digests are scoped to session so equal task names in different sessions stay distinct.
func NewRecorder(w progrock.Writer, session string) *Recorder {
	return &Recorder{
		w:       w,
		rec:     progrock.NewRecorder(w),
		session: session,
	}
}

// Record starts recording a new vertex for the named task.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(r.session + "/" + name)
	return ctx, &Vertex{vertex: r.rec.Vertex(d, name)}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
