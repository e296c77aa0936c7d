// Package task implements named, asynchronous child-process tasks polled from a host tick.
package task

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports"
	"go.trai.ch/zerr"
)

// ReadBufferSize is the capacity of the buffer used to drain the child's output.
const ReadBufferSize = 4096

// Task is one child-process invocation.
//
// A Task is not safe for concurrent use. Every method, including Update, must be
// called from the goroutine that drives the host tick.
type Task struct {
	name           string
	executablePath string
	arguments      string
	maxCommandLine int

	host   ports.ProcessHost
	ticker ports.Ticker
	logger ports.Logger

	state      domain.TaskState
	resultCode int
	hasResult  bool
	stopped    bool
	cmdLine    domain.CommandLine
	runErr     error
	pid        int
	startedAt  time.Time
	finishedAt time.Time

	output bytes.Buffer
	tee    io.Writer

	res resources
}

func newTask(
	name, executablePath, arguments string,
	maxCommandLine int,
	host ports.ProcessHost,
	ticker ports.Ticker,
	logger ports.Logger,
) *Task {
	return &Task{
		name:           name,
		executablePath: executablePath,
		arguments:      arguments,
		maxCommandLine: maxCommandLine,
		host:           host,
		ticker:         ticker,
		logger:         logger,
		state:          domain.StateIdle,
	}
}

// Name returns the task name.
func (t *Task) Name() string {
	return t.name
}

// State returns the current lifecycle state.
func (t *Task) State() domain.TaskState {
	return t.state
}

// IsIdle reports whether the task has not been launched yet.
func (t *Task) IsIdle() bool {
	return t.state == domain.StateIdle
}

// IsRunning reports whether the child process is alive and being polled.
func (t *Task) IsRunning() bool {
	return t.state == domain.StateRunning
}

// IsCompleted reports whether the task reached its terminal state.
func (t *Task) IsCompleted() bool {
	return t.state == domain.StateCompleted
}

// Output returns a copy of everything drained from the child so far.
func (t *Task) Output() []byte {
	return bytes.Clone(t.output.Bytes())
}

// ResultCode returns the recorded result. The second value is false until the task
// is COMPLETED with a result.
func (t *Task) ResultCode() (int, bool) {
	if t.state != domain.StateCompleted || !t.hasResult {
		return 0, false
	}
	return t.resultCode, true
}

// CommandLine returns the command line handed to the OS. It is zero until Run built it.
func (t *Task) CommandLine() domain.CommandLine {
	return t.cmdLine
}

// RunErr returns the error that made Run fail, if any.
func (t *Task) RunErr() error {
	return t.runErr
}

// TeeOutput mirrors every drained chunk to w in addition to the accumulator.
func (t *Task) TeeOutput(w io.Writer) {
	t.tee = w
}

// Info returns a snapshot of the task.
func (t *Task) Info() domain.TaskInfo {
	info := domain.TaskInfo{
		Name:        t.name,
		CommandLine: t.cmdLine.String(),
		State:       t.state,
		Pid:         t.pid,
		Stopped:     t.stopped,
		OutputSize:  t.output.Len(),
		StartedAt:   t.startedAt,
		FinishedAt:  t.finishedAt,
		LaunchError: t.runErr,
	}
	info.ResultCode, info.HasResult = t.ResultCode()
	return info
}

// Run launches the child process and subscribes the task to the host tick.
// It returns false if the task is not idle or if any launch step failed;
// a failed launch leaves the task COMPLETED with domain.ResultLaunchFailed.
func (t *Task) Run() bool {
	if !t.state.CanTransition(domain.StateRunning) {
		err := zerr.Wrap(domain.ErrTaskNotIdle, fmt.Sprintf("task %q is %s, ignoring run request", t.name, t.state))
		t.logger.Warn(zerr.With(err, "task_name", t.name).Error())
		return false
	}

	t.startedAt = time.Now()
	if err := t.launch(); err != nil {
		t.runErr = err
		t.logger.Error(err)
		t.setResult(domain.ResultLaunchFailed)
		t.cleanup()
		return false
	}

	t.setState(domain.StateRunning)
	t.ticker.Register(t)
	t.logger.Debug(fmt.Sprintf("task %q started with pid %d", t.name, t.pid))
	return true
}

func (t *Task) launch() error {
	cmd, err := domain.NewCommandLine(t.executablePath, t.arguments, t.maxCommandLine)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid command line"), "task_name", t.name)
	}
	t.cmdLine = cmd

	stdoutRead, stdoutWrite, err := t.host.CreatePipe()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create stdout pipe"), "task_name", t.name)
	}
	t.res.stdoutRead.set(stdoutRead)
	t.res.stdoutWrite.set(stdoutWrite)

	stdinRead, stdinWrite, err := t.host.CreatePipe()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create stdin pipe"), "task_name", t.name)
	}
	t.res.stdinRead.set(stdinRead)
	t.res.stdinWrite.set(stdinWrite)

	inheritance := []struct {
		end     ports.Handle
		inherit bool
	}{
		{stdoutRead, false},
		{stdinWrite, false},
		{stdoutWrite, true},
		{stdinRead, true},
	}
	for _, h := range inheritance {
		if err := h.end.SetInheritable(h.inherit); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to configure pipe inheritance"), "task_name", t.name)
		}
	}

	proc, err := t.host.Spawn(cmd, stdinRead, stdoutWrite)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to launch task"), "task_name", t.name)
		return zerr.With(err, "command_line", cmd.String())
	}
	t.res.process.set(proc)
	t.pid = proc.Pid()

	t.res.buf = make([]byte, ReadBufferSize)
	return nil
}

// Update drains pending output and polls the child for exit. It never blocks.
// Once the child exited, or polling failed, the task unsubscribes and releases its resources.
func (t *Task) Update(_ time.Duration) {
	if t.state != domain.StateRunning {
		return
	}

	t.drain()

	proc, ok := t.res.process.get()
	if !ok {
		return
	}
	status, err := proc.Poll()
	if err != nil {
		t.logger.Error(zerr.With(zerr.Wrap(err, "failed to poll task"), "task_name", t.name))
		t.setResult(domain.ErrnoCode(err))
		t.ticker.Unregister(t)
		t.cleanup()
		return
	}
	if !status.Exited {
		return
	}

	t.setResult(status.Code)
	t.drain()
	t.ticker.Unregister(t)
	t.cleanup()
}

// Stop force-terminates a running child and completes the task.
// It is safe on idle and completed tasks.
func (t *Task) Stop() {
	if proc, ok := t.res.process.get(); ok {
		if err := proc.Terminate(); err != nil {
			t.logger.Error(zerr.With(zerr.Wrap(err, "failed to terminate task"), "task_name", t.name))
		}
		t.setResult(domain.ResultStopped)
		t.stopped = true
		t.ticker.Unregister(t)
	}
	t.cleanup()
}

// drain reads everything the pipe reports as available, in chunks of at most ReadBufferSize.
func (t *Task) drain() {
	r, ok := t.res.stdoutRead.get()
	if !ok || t.res.buf == nil {
		return
	}

	for {
		avail, err := r.Available()
		if err != nil {
			t.logger.Error(zerr.With(zerr.Wrap(err, "failed to probe task output"), "task_name", t.name))
			return
		}
		if avail <= 0 {
			return
		}

		n, err := r.Read(t.res.buf[:min(avail, len(t.res.buf))])
		if n > 0 {
			t.appendOutput(t.res.buf[:n])
		}
		if err != nil {
			t.logger.Error(zerr.With(zerr.Wrap(err, "failed to read task output"), "task_name", t.name))
			return
		}
		if n == 0 {
			return
		}
	}
}

func (t *Task) appendOutput(p []byte) {
	t.output.Write(p)
	if t.tee == nil {
		return
	}
	if _, err := t.tee.Write(p); err != nil {
		t.logger.Warn(fmt.Sprintf("task %q: dropping output mirror: %v", t.name, err))
		t.tee = nil
	}
}

func (t *Task) setState(next domain.TaskState) {
	if !t.state.CanTransition(next) {
		t.logger.Warn(fmt.Sprintf("task %q: refusing transition %s -> %s", t.name, t.state, next))
		return
	}
	t.state = next
}

func (t *Task) setResult(code int) {
	t.resultCode = code
	t.hasResult = true
}

// cleanup releases every held resource and moves the task to COMPLETED.
// It is idempotent and safe after partial acquisition.
func (t *Task) cleanup() {
	if t.res.holding() {
		if err := t.res.release(); err != nil {
			t.logger.Error(zerr.With(zerr.Wrap(err, "failed to release task resources"), "task_name", t.name))
		}
	}

	if t.state.IsTerminal() {
		return
	}
	t.setState(domain.StateCompleted)
	t.finishedAt = time.Now()

	if t.output.Len() > 0 {
		t.logger.Debug(fmt.Sprintf("task %q output:\n%s", t.name, t.output.String()))
	}
}
