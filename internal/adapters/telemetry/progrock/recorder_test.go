package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ptask/internal/adapters/telemetry/progrock"
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports"
)

func TestNew(t *testing.T) {
	var recorder ports.Telemetry = progrock.New("run-1")
	assert.NotNil(t, recorder)
	require.NoError(t, recorder.Close())
}

func TestRecorder_TaskVertices(t *testing.T) {
	recorder := progrock.New("run-1")
	ctx := context.Background()

	_, ok := recorder.Record(ctx, "echo")
	_, failed := recorder.Record(ctx, "sleep-fail")

	n, err := ok.Stdout().Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	v, isVertex := failed.(*progrock.Vertex)
	require.True(t, isVertex)
	v.Log(domain.LogLevelWarn, "stopped by host")

	ok.Complete(nil)
	failed.Complete(errors.New("stopped"))

	require.NoError(t, recorder.Close())
}
