package task_test

import (
	"bytes"
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports/mocks"
	"go.trai.ch/ptask/internal/engine/task"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	host    *mocks.MockProcessHost
	ticker  *mocks.MockTicker
	logger  *mocks.MockLogger
	stdoutR *mocks.MockReadEnd
	stdoutW *mocks.MockWriteEnd
	stdinR  *mocks.MockReadEnd
	stdinW  *mocks.MockWriteEnd
	proc    *mocks.MockProcess
	reg     *task.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		host:    mocks.NewMockProcessHost(ctrl),
		ticker:  mocks.NewMockTicker(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		stdoutR: mocks.NewMockReadEnd(ctrl),
		stdoutW: mocks.NewMockWriteEnd(ctrl),
		stdinR:  mocks.NewMockReadEnd(ctrl),
		stdinW:  mocks.NewMockWriteEnd(ctrl),
		proc:    mocks.NewMockProcess(ctrl),
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.reg = task.NewRegistry(f.host, f.ticker, f.logger)
	return f
}

func (f *fixture) expectPipes() {
	gomock.InOrder(
		f.host.EXPECT().CreatePipe().Return(f.stdoutR, f.stdoutW, nil),
		f.host.EXPECT().CreatePipe().Return(f.stdinR, f.stdinW, nil),
	)
}

func (f *fixture) expectInheritance() {
	f.stdoutR.EXPECT().SetInheritable(false).Return(nil)
	f.stdinW.EXPECT().SetInheritable(false).Return(nil)
	f.stdoutW.EXPECT().SetInheritable(true).Return(nil)
	f.stdinR.EXPECT().SetInheritable(true).Return(nil)
}

func (f *fixture) expectLaunch(tk *task.Task) {
	f.expectPipes()
	f.expectInheritance()
	f.host.EXPECT().Spawn(gomock.Any(), f.stdinR, f.stdoutW).Return(f.proc, nil)
	f.proc.EXPECT().Pid().Return(4242)
	f.ticker.EXPECT().Register(tk)
}

func (f *fixture) expectPipesClosed() {
	f.stdoutR.EXPECT().Close().Return(nil)
	f.stdoutW.EXPECT().Close().Return(nil)
	f.stdinR.EXPECT().Close().Return(nil)
	f.stdinW.EXPECT().Close().Return(nil)
}

func (f *fixture) expectReleased() {
	f.proc.EXPECT().Close().Return(nil)
	f.expectPipesClosed()
}

// expectChunks makes stdoutR report and deliver each chunk in turn, then report nothing.
func (f *fixture) expectChunks(chunks ...string) {
	calls := make([]any, 0, 2*len(chunks)+1)
	for _, chunk := range chunks {
		calls = append(calls,
			f.stdoutR.EXPECT().Available().Return(len(chunk), nil),
			f.stdoutR.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
				return copy(p, chunk), nil
			}),
		)
	}
	calls = append(calls, f.stdoutR.EXPECT().Available().Return(0, nil))
	gomock.InOrder(calls...)
}

func TestTask_Run(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("echo", "/bin/echo", "hello")
	require.True(t, tk.IsIdle())
	require.True(t, tk.CommandLine().IsZero())

	f.expectLaunch(tk)
	require.True(t, tk.Run())

	assert.True(t, tk.IsRunning())
	assert.Equal(t, domain.StateRunning, tk.State())
	assert.Equal(t, `"/bin/echo" hello`, tk.CommandLine().String())
	assert.NoError(t, tk.RunErr())

	_, ok := tk.ResultCode()
	assert.False(t, ok, "result must not be readable while running")

	info := tk.Info()
	assert.Equal(t, 4242, info.Pid)
	assert.False(t, info.StartedAt.IsZero())
	assert.True(t, info.FinishedAt.IsZero())
}

func TestTask_RunTwice(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("echo", "/bin/echo", "hello")

	f.expectLaunch(tk)
	require.True(t, tk.Run())

	f.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "echo")
	})
	assert.False(t, tk.Run())
	assert.True(t, tk.IsRunning(), "second run must not disturb the first")
}

func TestTask_Update_DrainsUntilExit(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("echo", "/bin/echo", "hello")
	f.expectLaunch(tk)
	require.True(t, tk.Run())

	f.expectChunks("hel", "lo")
	f.proc.EXPECT().Poll().Return(domain.StillRunning, nil)
	tk.Update(0)

	assert.True(t, tk.IsRunning())
	assert.Equal(t, "hello", string(tk.Output()))

	f.stdoutR.EXPECT().Available().Return(0, nil)
	f.proc.EXPECT().Poll().Return(domain.StillRunning, nil)
	tk.Update(0)
	assert.True(t, tk.IsRunning())

	// Bytes written between the first drain and the exit are still collected.
	gomock.InOrder(
		f.stdoutR.EXPECT().Available().Return(0, nil),
		f.proc.EXPECT().Poll().Return(domain.Exited(0), nil),
		f.stdoutR.EXPECT().Available().Return(1, nil),
		f.stdoutR.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, "\n"), nil
		}),
		f.stdoutR.EXPECT().Available().Return(0, nil),
		f.ticker.EXPECT().Unregister(tk),
	)
	f.expectReleased()
	tk.Update(0)

	require.True(t, tk.IsCompleted())
	code, ok := tk.ResultCode()
	require.True(t, ok)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", string(tk.Output()))

	info := tk.Info()
	assert.True(t, info.Succeeded())
	assert.False(t, info.FinishedAt.IsZero())
	assert.Equal(t, 6, info.OutputSize)

	// Completed tasks ignore further ticks.
	tk.Update(0)
}

func TestTask_Update_NonZeroExit(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("fail", "/bin/false", "")
	f.expectLaunch(tk)
	require.True(t, tk.Run())

	f.stdoutR.EXPECT().Available().Return(0, nil).Times(2)
	f.proc.EXPECT().Poll().Return(domain.Exited(3), nil)
	f.ticker.EXPECT().Unregister(tk)
	f.expectReleased()
	tk.Update(0)

	code, ok := tk.ResultCode()
	require.True(t, ok)
	assert.Equal(t, 3, code)
	assert.False(t, tk.Info().Succeeded())
	assert.False(t, tk.Info().Stopped)
}

func TestTask_Update_ReadsAtMostBufferCapacity(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("big", "/bin/cat", "big.bin")
	f.expectLaunch(tk)
	require.True(t, tk.Run())

	const total = 10000
	remaining := total
	f.stdoutR.EXPECT().Available().DoAndReturn(func() (int, error) {
		return remaining, nil
	}).Times(4)
	f.stdoutR.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		assert.LessOrEqual(t, len(p), task.ReadBufferSize)
		assert.LessOrEqual(t, len(p), remaining)
		for i := range p {
			p[i] = 'x'
		}
		remaining -= len(p)
		return len(p), nil
	}).Times(3)
	f.proc.EXPECT().Poll().Return(domain.StillRunning, nil)
	tk.Update(0)

	assert.Equal(t, bytes.Repeat([]byte{'x'}, total), tk.Output())
}

func TestTask_Update_ReadErrorStopsDrainingForTick(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("echo", "/bin/echo", "")
	f.expectLaunch(tk)
	require.True(t, tk.Run())

	readErr := errors.New("broken pipe")
	gomock.InOrder(
		f.stdoutR.EXPECT().Available().Return(4, nil),
		f.stdoutR.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, "ab"), readErr
		}),
		f.proc.EXPECT().Poll().Return(domain.StillRunning, nil),
	)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, readErr)
	})
	tk.Update(0)

	assert.True(t, tk.IsRunning())
	assert.Equal(t, "ab", string(tk.Output()))
}

func TestTask_Update_PollFailure(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("echo", "/bin/echo", "")
	f.expectLaunch(tk)
	require.True(t, tk.Run())

	f.stdoutR.EXPECT().Available().Return(0, nil)
	f.proc.EXPECT().Poll().Return(domain.ExitStatus{}, zerr.Wrap(syscall.ECHILD, "wait4"))
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, syscall.ECHILD)
	})
	f.ticker.EXPECT().Unregister(tk)
	f.expectReleased()
	tk.Update(0)

	require.True(t, tk.IsCompleted())
	code, ok := tk.ResultCode()
	require.True(t, ok)
	assert.Equal(t, int(syscall.ECHILD), code)
}

func TestTask_Stop_Running(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("sleep", "/bin/sleep", "60")
	f.expectLaunch(tk)
	require.True(t, tk.Run())

	gomock.InOrder(
		f.proc.EXPECT().Terminate().Return(nil),
		f.ticker.EXPECT().Unregister(tk),
	)
	f.expectReleased()
	tk.Stop()

	require.True(t, tk.IsCompleted())
	code, ok := tk.ResultCode()
	require.True(t, ok)
	assert.Equal(t, domain.ResultStopped, code)
	assert.True(t, tk.Info().Stopped)

	// A second stop has nothing left to release.
	tk.Stop()
	assert.True(t, tk.IsCompleted())
}

func TestTask_Stop_TerminateErrorStillCompletes(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("sleep", "/bin/sleep", "60")
	f.expectLaunch(tk)
	require.True(t, tk.Run())

	f.proc.EXPECT().Terminate().Return(syscall.EPERM)
	f.logger.EXPECT().Error(gomock.Any())
	f.ticker.EXPECT().Unregister(tk)
	f.expectReleased()
	tk.Stop()

	code, ok := tk.ResultCode()
	require.True(t, ok)
	assert.Equal(t, domain.ResultStopped, code)
}

func TestTask_Stop_Idle(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("never", "/bin/true", "")

	tk.Stop()
	require.True(t, tk.IsCompleted())
	_, ok := tk.ResultCode()
	assert.False(t, ok, "a task that never launched has no result")

	tk.Stop()
	assert.True(t, tk.IsCompleted())

	f.logger.EXPECT().Warn(gomock.Any())
	assert.False(t, tk.Run(), "completed is terminal")
}

func TestTask_Run_LaunchFailures(t *testing.T) {
	spawnErr := zerr.Wrap(domain.ErrSpawn, "exec format error")

	tests := []struct {
		name   string
		exe    string
		args   string
		expect func(f *fixture)
		is     error
	}{
		{
			name:   "empty executable",
			exe:    "",
			expect: func(*fixture) {},
			is:     domain.ErrEmptyExecutable,
		},
		{
			name:   "command line too long",
			exe:    "/bin/echo",
			args:   strings.Repeat("a", domain.DefaultMaxCommandLine),
			expect: func(*fixture) {},
			is:     domain.ErrCommandLineTooLong,
		},
		{
			name: "stdout pipe",
			exe:  "/bin/echo",
			expect: func(f *fixture) {
				f.host.EXPECT().CreatePipe().Return(nil, nil, domain.ErrPipeCreate)
			},
			is: domain.ErrPipeCreate,
		},
		{
			name: "stdin pipe",
			exe:  "/bin/echo",
			expect: func(f *fixture) {
				gomock.InOrder(
					f.host.EXPECT().CreatePipe().Return(f.stdoutR, f.stdoutW, nil),
					f.host.EXPECT().CreatePipe().Return(nil, nil, domain.ErrPipeCreate),
				)
				f.stdoutR.EXPECT().Close().Return(nil)
				f.stdoutW.EXPECT().Close().Return(nil)
			},
			is: domain.ErrPipeCreate,
		},
		{
			name: "inheritance",
			exe:  "/bin/echo",
			expect: func(f *fixture) {
				f.expectPipes()
				f.stdoutR.EXPECT().SetInheritable(false).Return(domain.ErrInheritance)
				f.expectPipesClosed()
			},
			is: domain.ErrInheritance,
		},
		{
			name: "spawn",
			exe:  "/no/such/binary",
			expect: func(f *fixture) {
				f.expectPipes()
				f.expectInheritance()
				f.host.EXPECT().Spawn(gomock.Any(), f.stdinR, f.stdoutW).Return(nil, spawnErr)
				f.expectPipesClosed()
			},
			is: domain.ErrSpawn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tk := f.reg.CreateTask("broken", tt.exe, tt.args)

			tt.expect(f)
			f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
				assert.ErrorIs(t, err, tt.is)
			})

			assert.False(t, tk.Run())
			require.True(t, tk.IsCompleted())
			require.ErrorIs(t, tk.RunErr(), tt.is)

			code, ok := tk.ResultCode()
			require.True(t, ok)
			assert.Equal(t, domain.ResultLaunchFailed, code)
			assert.Equal(t, tk.RunErr(), tk.Info().LaunchError)

			// Nothing is left to release.
			tk.Stop()
		})
	}
}

func TestTask_TeeOutput(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("echo", "/bin/echo", "")
	var mirror bytes.Buffer
	tk.TeeOutput(&mirror)

	f.expectLaunch(tk)
	require.True(t, tk.Run())

	f.expectChunks("one ", "two")
	f.proc.EXPECT().Poll().Return(domain.StillRunning, nil)
	tk.Update(0)

	assert.Equal(t, "one two", mirror.String())
	assert.Equal(t, "one two", string(tk.Output()))
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errors.New("closed")
}

func TestTask_TeeOutput_DroppedOnError(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("echo", "/bin/echo", "")
	mirror := &failingWriter{}
	tk.TeeOutput(mirror)

	f.expectLaunch(tk)
	require.True(t, tk.Run())

	f.expectChunks("one ", "two")
	f.proc.EXPECT().Poll().Return(domain.StillRunning, nil)
	f.logger.EXPECT().Warn(gomock.Any())
	tk.Update(0)

	assert.Equal(t, 1, mirror.writes)
	assert.Equal(t, "one two", string(tk.Output()))
}

func TestTask_OutputIsCopy(t *testing.T) {
	f := newFixture(t)
	tk := f.reg.CreateTask("echo", "/bin/echo", "")
	f.expectLaunch(tk)
	require.True(t, tk.Run())

	f.expectChunks("abc")
	f.proc.EXPECT().Poll().Return(domain.StillRunning, nil)
	tk.Update(0)

	out := tk.Output()
	out[0] = 'z'
	assert.Equal(t, "abc", string(tk.Output()))
}
