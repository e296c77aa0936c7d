//go:build windows

// Package process provides the OS process and pipe primitives behind ports.ProcessHost.
package process

import (
	"fmt"
	"unsafe"

	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sys/windows"
)

// terminatedExitCode is passed to TerminateProcess. The task records its own stop sentinel.
const terminatedExitCode = 1

var procPeekNamedPipe = windows.NewLazySystemDLL("kernel32.dll").NewProc("PeekNamedPipe")

// Host implements ports.ProcessHost with anonymous pipes and CreateProcess.
type Host struct {
	logger ports.Logger
}

// NewHost creates a new Host.
func NewHost(logger ports.Logger) *Host {
	return &Host{logger: logger}
}

// CreatePipe creates an anonymous pipe whose ends start out inheritable; callers narrow
// inheritance with SetInheritable before spawning.
func (h *Host) CreatePipe() (ports.ReadEnd, ports.WriteEnd, error) {
	sa := windows.SecurityAttributes{InheritHandle: 1}
	sa.Length = uint32(unsafe.Sizeof(sa))

	var r, w windows.Handle
	if err := windows.CreatePipe(&r, &w, &sa, 0); err != nil {
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrPipeCreate, "CreatePipe"), "cause", err.Error())
	}
	return &readEnd{handle{h: r}}, &writeEnd{handle{h: w}}, nil
}

// Spawn runs CreateProcess with the command line as is, inheriting handles, with stdout and
// stderr both redirected to stdout.
func (h *Host) Spawn(cmd domain.CommandLine, stdin ports.ReadEnd, stdout ports.WriteEnd) (ports.Process, error) {
	in, ok := stdin.(*readEnd)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrSpawn, "stdin was not created by this host"), "type", fmt.Sprintf("%T", stdin))
	}
	out, ok := stdout.(*writeEnd)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrSpawn, "stdout was not created by this host"), "type", fmt.Sprintf("%T", stdout))
	}
	if in.closed || out.closed {
		return nil, zerr.Wrap(domain.ErrHandleClosed, "cannot spawn with a released pipe end")
	}

	// CreateProcess may write to the command line buffer, so it gets a private copy.
	cmdLine, err := windows.UTF16PtrFromString(cmd.String())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrSpawn, "invalid command line"), "cause", err.Error())
	}

	si := &windows.StartupInfo{
		Flags:     windows.STARTF_USESTDHANDLES,
		StdInput:  in.h,
		StdOutput: out.h,
		StdErr:    out.h,
	}
	si.Cb = uint32(unsafe.Sizeof(*si))

	var pi windows.ProcessInformation
	if err := windows.CreateProcess(nil, cmdLine, nil, nil, true, 0, nil, nil, si, &pi); err != nil {
		err = zerr.With(zerr.Wrap(domain.ErrSpawn, "CreateProcess"), "cause", err.Error())
		return nil, zerr.With(err, "command_line", cmd.String())
	}

	h.logger.Debug(fmt.Sprintf("spawned pid %d: %s", pi.ProcessId, cmd.String()))
	return &process{pid: int(pi.ProcessId), process: pi.Process, thread: pi.Thread}, nil
}

type handle struct {
	h      windows.Handle
	closed bool
}

func (h *handle) SetInheritable(inherit bool) error {
	if h.closed {
		return domain.ErrHandleClosed
	}
	var flags uint32
	if inherit {
		flags = windows.HANDLE_FLAG_INHERIT
	}
	if err := windows.SetHandleInformation(h.h, windows.HANDLE_FLAG_INHERIT, flags); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrInheritance, "SetHandleInformation"), "cause", err.Error())
	}
	return nil
}

func (h *handle) Close() error {
	if h.closed {
		return domain.ErrHandleClosed
	}
	h.closed = true
	return windows.CloseHandle(h.h)
}

type readEnd struct {
	handle
}

// Available peeks at the pipe without consuming anything.
func (r *readEnd) Available() (int, error) {
	if r.closed {
		return 0, domain.ErrHandleClosed
	}
	var avail uint32
	ok, _, err := procPeekNamedPipe.Call(uintptr(r.h), 0, 0, 0, uintptr(unsafe.Pointer(&avail)), 0)
	if ok == 0 {
		return 0, zerr.Wrap(err, "PeekNamedPipe")
	}
	return int(avail), nil
}

func (r *readEnd) Read(p []byte) (int, error) {
	if r.closed {
		return 0, domain.ErrHandleClosed
	}
	var done uint32
	if err := windows.ReadFile(r.h, p, &done, nil); err != nil {
		return int(done), zerr.Wrap(err, "ReadFile")
	}
	return int(done), nil
}

type writeEnd struct {
	handle
}

type process struct {
	pid     int
	process windows.Handle
	thread  windows.Handle
	closed  bool
}

func (p *process) Pid() int {
	return p.pid
}

// Poll checks the process object without waiting.
func (p *process) Poll() (domain.ExitStatus, error) {
	event, err := windows.WaitForSingleObject(p.process, 0)
	if err != nil {
		return domain.ExitStatus{}, zerr.With(zerr.Wrap(err, "WaitForSingleObject"), "pid", p.pid)
	}
	if event == uint32(windows.WAIT_TIMEOUT) {
		return domain.StillRunning, nil
	}

	var code uint32
	if err := windows.GetExitCodeProcess(p.process, &code); err != nil {
		return domain.ExitStatus{}, zerr.With(zerr.Wrap(err, "GetExitCodeProcess"), "pid", p.pid)
	}
	return domain.Exited(int(int32(code))), nil
}

func (p *process) Terminate() error {
	if err := windows.TerminateProcess(p.process, terminatedExitCode); err != nil {
		return zerr.With(zerr.Wrap(err, "TerminateProcess"), "pid", p.pid)
	}
	return nil
}

func (p *process) Close() error {
	if p.closed {
		return domain.ErrHandleClosed
	}
	p.closed = true
	errThread := windows.CloseHandle(p.thread)
	if err := windows.CloseHandle(p.process); err != nil {
		return err
	}
	return errThread
}
