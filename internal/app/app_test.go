package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ptask/internal/adapters/settings"
	"go.trai.ch/ptask/internal/adapters/ticker"
	"go.trai.ch/ptask/internal/app"
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports/mocks"
	"go.trai.ch/ptask/internal/engine/task"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	loader    *mocks.MockManifestLoader
	host      *mocks.MockProcessHost
	store     *mocks.MockResultStore
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	logger    *mocks.MockLogger
	out       *bytes.Buffer
	app       *app.App
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &appFixture{
		loader:    mocks.NewMockManifestLoader(ctrl),
		host:      mocks.NewMockProcessHost(ctrl),
		store:     mocks.NewMockResultStore(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		out:       &bytes.Buffer{},
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	loop := ticker.New()
	registry := task.NewRegistry(f.host, loop, f.logger)
	cfg := &settings.Settings{TickInterval: time.Millisecond, Manifest: "ptask.yaml"}

	f.app = app.New(f.loader, registry, loop, f.store, f.telemetry, f.logger, cfg).WithOutput(f.out)
	return f
}

func TestApp_Run_ManifestLoadError(t *testing.T) {
	f := newAppFixture(t)
	f.loader.EXPECT().Load("ptask.yaml").Return(nil, errors.New("boom"))

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load manifest")
}

func TestApp_Run_UsesExplicitManifestPath(t *testing.T) {
	f := newAppFixture(t)
	f.loader.EXPECT().Load("other/tasks.toml").Return(&domain.Manifest{}, nil)

	err := f.app.Run(context.Background(), app.RunOptions{Manifest: "other/tasks.toml"})
	require.ErrorIs(t, err, domain.ErrNoTasks)
}

func TestApp_Run_UnknownTask(t *testing.T) {
	f := newAppFixture(t)
	f.loader.EXPECT().Load("ptask.yaml").Return(&domain.Manifest{
		Tasks: []domain.TaskSpec{{Name: "build", Executable: "make"}},
	}, nil)

	err := f.app.Run(context.Background(), app.RunOptions{Names: []string{"deploy"}})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestApp_Exec_LaunchFailure(t *testing.T) {
	f := newAppFixture(t)

	f.telemetry.EXPECT().Record(gomock.Any(), "broken").Return(context.Background(), f.vertex)
	f.vertex.EXPECT().Stdout().Return(io.Discard)
	f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))
	f.logger.EXPECT().Error(gomock.Any())
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(func(res domain.TaskResult, output []byte) error {
		assert.Equal(t, "broken", res.TaskName)
		assert.Equal(t, domain.ResultLaunchFailed, res.ResultCode)
		assert.NotEmpty(t, res.RunID)
		assert.Empty(t, output)
		return nil
	})

	err := f.app.Exec(context.Background(), domain.TaskSpec{Name: "broken"}, false)
	require.ErrorIs(t, err, domain.ErrTasksFailed)
	assert.Contains(t, f.out.String(), "==> broken: launch failed")
}

func TestApp_Exec_PersistFailure(t *testing.T) {
	f := newAppFixture(t)

	f.telemetry.EXPECT().Record(gomock.Any(), "broken").Return(context.Background(), f.vertex)
	f.vertex.EXPECT().Stdout().Return(io.Discard)
	f.vertex.EXPECT().Complete(gomock.Any())
	f.logger.EXPECT().Error(gomock.Any()).Times(2)
	f.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	err := f.app.Exec(context.Background(), domain.TaskSpec{Name: "broken"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist results")
}

func TestApp_Results(t *testing.T) {
	f := newAppFixture(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	f.store.EXPECT().List().Return([]domain.TaskResult{
		{TaskName: "build", ResultCode: 0, OutputDigest: "abc", OutputSize: 6, StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)},
		{TaskName: "serve", ResultCode: domain.ResultStopped, Stopped: true},
	}, nil)
	f.store.EXPECT().Output("abc").Return([]byte("built!"), nil)

	var out bytes.Buffer
	require.NoError(t, f.app.Results(&out, nil, true))

	got := out.String()
	assert.Contains(t, got, "build")
	assert.Contains(t, got, "duration=1.5s")
	assert.Contains(t, got, "built!\n")
	assert.Contains(t, got, "result=-1 stopped")
}

func TestApp_Results_Named(t *testing.T) {
	f := newAppFixture(t)

	f.store.EXPECT().Get("build").Return(&domain.TaskResult{TaskName: "build", ResultCode: 2, OutputSize: 3}, nil)

	var out bytes.Buffer
	require.NoError(t, f.app.Results(&out, []string{"build"}, false))
	assert.Contains(t, out.String(), "result=2 output=3B")
}

func TestApp_Results_Missing(t *testing.T) {
	f := newAppFixture(t)

	f.store.EXPECT().Get("ghost").Return(nil, nil)

	err := f.app.Results(io.Discard, []string{"ghost"}, false)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}
