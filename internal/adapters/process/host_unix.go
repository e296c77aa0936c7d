//go:build linux || darwin || freebsd

// Package process provides the OS process and pipe primitives behind ports.ProcessHost.
package process

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

// DefaultShell interprets the command line so the quoted path and raw arguments are
// split exactly as written.
const DefaultShell = "/bin/sh"

// Host implements ports.ProcessHost on unix using pipes, fork/exec and wait4.
type Host struct {
	logger ports.Logger
	shell  string
	env    func() []string
}

// NewHost creates a new Host that spawns children with the current environment.
func NewHost(logger ports.Logger) *Host {
	return &Host{
		logger: logger,
		shell:  DefaultShell,
		env:    os.Environ,
	}
}

// CreatePipe creates an anonymous pipe. Both ends are close-on-exec.
func (h *Host) CreatePipe() (ports.ReadEnd, ports.WriteEnd, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrPipeCreate, "os.Pipe"), "cause", err.Error())
	}
	return &readEnd{end{f: r}}, &writeEnd{end{f: w}}, nil
}

// Spawn starts "/bin/sh -c 'exec <command line>'" with the given ends as its
// stdin, stdout and stderr. The shell is replaced by the child.
func (h *Host) Spawn(cmd domain.CommandLine, stdin ports.ReadEnd, stdout ports.WriteEnd) (ports.Process, error) {
	in, ok := stdin.(*readEnd)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrSpawn, "stdin was not created by this host"), "type", fmt.Sprintf("%T", stdin))
	}
	out, ok := stdout.(*writeEnd)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrSpawn, "stdout was not created by this host"), "type", fmt.Sprintf("%T", stdout))
	}
	if in.f == nil || out.f == nil {
		return nil, zerr.Wrap(domain.ErrHandleClosed, "cannot spawn with a released pipe end")
	}
	if !in.inherit || !out.inherit {
		return nil, zerr.Wrap(domain.ErrInheritance, "child pipe ends must be inheritable")
	}

	env := h.env()
	if _, err := resolveExecutable(cmd.Executable(), env); err != nil {
		err = zerr.With(zerr.Wrap(domain.ErrExecutableNotFound, "cannot launch"), "executable", cmd.Executable())
		return nil, err
	}

	argv := []string{h.shell, "-c", shellCommand(cmd)}
	proc, err := os.StartProcess(h.shell, argv, &os.ProcAttr{
		Env:   env,
		Files: []*os.File{in.f, out.f, out.f},
	})
	if err != nil {
		err = zerr.With(zerr.Wrap(domain.ErrSpawn, "os.StartProcess"), "cause", err.Error())
		return nil, zerr.With(err, "command_line", cmd.String())
	}

	pid := proc.Pid
	// The child is reaped through wait4 below, not through os.Process.
	if err := proc.Release(); err != nil {
		h.logger.Warn(fmt.Sprintf("releasing process handle for pid %d: %v", pid, err))
	}

	h.logger.Debug(fmt.Sprintf("spawned pid %d: %s", pid, cmd.String()))
	return &process{pid: pid}, nil
}

// shellCommand renders cmd for "sh -c". The shell still expands $, ` and \ inside
// double quotes, so those are escaped to keep the executable path literal.
func shellCommand(cmd domain.CommandLine) string {
	var b strings.Builder
	b.WriteString(`exec "`)
	for _, r := range cmd.Executable() {
		switch r {
		case '$', '`', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteString(`" `)
	b.WriteString(cmd.Arguments())
	return b.String()
}

type end struct {
	f       *os.File
	inherit bool
}

func (e *end) SetInheritable(inherit bool) error {
	if e.f == nil {
		return domain.ErrHandleClosed
	}
	e.inherit = inherit
	return nil
}

func (e *end) Close() error {
	if e.f == nil {
		return domain.ErrHandleClosed
	}
	f := e.f
	e.f = nil
	return f.Close()
}

type readEnd struct {
	end
}

// Available reports the number of bytes buffered in the pipe.
func (r *readEnd) Available() (int, error) {
	if r.f == nil {
		return 0, domain.ErrHandleClosed
	}
	rc, err := r.f.SyscallConn()
	if err != nil {
		return 0, zerr.Wrap(err, "failed to access pipe descriptor")
	}

	var n int
	var ioctlErr error
	if err := rc.Control(func(fd uintptr) {
		n, ioctlErr = unix.IoctlGetInt(int(fd), ioctlReadable)
	}); err != nil {
		return 0, zerr.Wrap(err, "failed to access pipe descriptor")
	}
	if ioctlErr != nil {
		return 0, zerr.Wrap(ioctlErr, "ioctl FIONREAD")
	}
	return n, nil
}

func (r *readEnd) Read(p []byte) (int, error) {
	if r.f == nil {
		return 0, domain.ErrHandleClosed
	}
	return r.f.Read(p)
}

type writeEnd struct {
	end
}

type process struct {
	pid    int
	status *domain.ExitStatus
	closed bool
}

func (p *process) Pid() int {
	return p.pid
}

// Poll reaps the child if it exited, without blocking.
func (p *process) Poll() (domain.ExitStatus, error) {
	if p.status != nil {
		return *p.status, nil
	}
	return p.wait(unix.WNOHANG)
}

// Terminate sends SIGKILL without waiting for the child to die.
// A child that is not reaped yet is reaped by Close.
func (p *process) Terminate() error {
	if p.closed {
		return domain.ErrHandleClosed
	}
	if p.status != nil {
		return nil
	}
	if err := unix.Kill(p.pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
		return zerr.With(zerr.Wrap(err, "failed to kill process"), "pid", p.pid)
	}
	_, err := p.wait(unix.WNOHANG)
	return err
}

// Close releases the handle. A child still alive is reaped in the background once it exits.
func (p *process) Close() error {
	if p.closed {
		return domain.ErrHandleClosed
	}
	p.closed = true
	if p.status != nil {
		return nil
	}
	if st, err := p.wait(unix.WNOHANG); err == nil && !st.Exited {
		go reap(p.pid)
	}
	return nil
}

func reap(pid int) {
	var ws unix.WaitStatus
	for {
		if _, err := unix.Wait4(pid, &ws, 0, nil); !errors.Is(err, unix.EINTR) {
			return
		}
	}
}

func (p *process) wait(options int) (domain.ExitStatus, error) {
	var ws unix.WaitStatus
	for {
		wpid, err := unix.Wait4(p.pid, &ws, options, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return domain.ExitStatus{}, zerr.With(zerr.Wrap(err, "wait4 failed"), "pid", p.pid)
		}
		if wpid == 0 {
			return domain.StillRunning, nil
		}
		break
	}

	status := domain.Exited(exitCode(ws))
	p.status = &status
	return status, nil
}

// exitCode maps a wait status to an exit code. Death by signal follows the shell
// convention of 128 plus the signal number.
func exitCode(ws unix.WaitStatus) int {
	switch {
	case ws.Exited():
		return ws.ExitStatus()
	case ws.Signaled():
		return 128 + int(ws.Signal())
	default:
		return domain.ResultUnknownError
	}
}
