//go:build linux || darwin || freebsd

package app_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ptask/internal/adapters/cas"
	"go.trai.ch/ptask/internal/adapters/logger"
	"go.trai.ch/ptask/internal/adapters/process"
	"go.trai.ch/ptask/internal/adapters/settings"
	"go.trai.ch/ptask/internal/adapters/telemetry/progrock"
	"go.trai.ch/ptask/internal/adapters/ticker"
	"go.trai.ch/ptask/internal/app"
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports/mocks"
	"go.trai.ch/ptask/internal/engine/task"
	"go.uber.org/mock/gomock"
)

type liveFixture struct {
	loader *mocks.MockManifestLoader
	store  *cas.Store
	out    *bytes.Buffer
	app    *app.App
}

func newLiveFixture(t *testing.T) *liveFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	dir := t.TempDir()

	log := logger.New()
	log.SetOutput(io.Discard)

	store, err := cas.NewStore(filepath.Join(dir, "results.json"), filepath.Join(dir, "cas"))
	require.NoError(t, err)

	loop := ticker.New()
	registry := task.NewRegistry(process.NewHost(log), loop, log)
	cfg := &settings.Settings{TickInterval: 5 * time.Millisecond, Manifest: "ptask.yaml"}

	f := &liveFixture{
		loader: mocks.NewMockManifestLoader(ctrl),
		store:  store,
		out:    &bytes.Buffer{},
	}
	f.app = app.New(f.loader, registry, loop, store, progrock.New("test"), log, cfg).
		WithOutput(f.out).
		WithTeaOptions(
			tea.WithInput(strings.NewReader("")),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
			tea.WithoutRenderer(),
		)
	t.Cleanup(func() { _ = f.app.Close() })
	return f
}

func TestApp_Run_RealProcesses(t *testing.T) {
	f := newLiveFixture(t)
	f.loader.EXPECT().Load("ptask.yaml").Return(&domain.Manifest{
		Tasks: []domain.TaskSpec{
			{Name: "hello", Executable: "/bin/echo", Args: "hello"},
			{Name: "fail", Executable: "/bin/sh", Args: `-c "exit 3"`},
		},
	}, nil)

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.ErrorIs(t, err, domain.ErrTasksFailed)
	assert.Contains(t, err.Error(), "failures in fail")
	assert.NotContains(t, err.Error(), "hello")

	hello, err := f.store.Get("hello")
	require.NoError(t, err)
	require.NotNil(t, hello)
	assert.Equal(t, 0, hello.ResultCode)

	output, err := f.store.Output(hello.OutputDigest)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(output))

	failed, err := f.store.Get("fail")
	require.NoError(t, err)
	require.NotNil(t, failed)
	assert.Equal(t, 3, failed.ResultCode)
	assert.Equal(t, hello.RunID, failed.RunID)

	assert.Contains(t, f.out.String(), "==> hello: exited with 0")
	assert.Contains(t, f.out.String(), "==> fail: exited with 3")
}

func TestApp_Run_SelectsSubset(t *testing.T) {
	f := newLiveFixture(t)
	f.loader.EXPECT().Load("ptask.yaml").Return(&domain.Manifest{
		TickInterval: time.Millisecond,
		Tasks: []domain.TaskSpec{
			{Name: "hello", Executable: "/bin/echo", Args: "hello"},
			{Name: "fail", Executable: "/bin/sh", Args: `-c "exit 3"`},
		},
	}, nil)

	require.NoError(t, f.app.Run(context.Background(), app.RunOptions{Names: []string{"hello"}}))

	failed, err := f.store.Get("fail")
	require.NoError(t, err)
	assert.Nil(t, failed)
}

func TestApp_Exec_TUI(t *testing.T) {
	f := newLiveFixture(t)

	err := f.app.Exec(context.Background(), domain.TaskSpec{Name: "greet", Executable: "/bin/sh", Args: `-c "echo one; echo two"`}, true)
	require.NoError(t, err)

	res, err := f.store.Get("greet")
	require.NoError(t, err)
	require.NotNil(t, res)
	output, err := f.store.Output(res.OutputDigest)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(output))
}

func TestApp_Exec_CancelStopsTasks(t *testing.T) {
	f := newLiveFixture(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := f.app.Exec(ctx, domain.TaskSpec{Name: "sleepy", Executable: "/bin/sleep", Args: "30"}, false)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)

	res, err := f.store.Get("sleepy")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Stopped)
	assert.Equal(t, domain.ResultStopped, res.ResultCode)
}
