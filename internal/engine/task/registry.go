package task

import (
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry is a name-keyed collection of tasks. It owns every task it creates
// and stops all of them on Close.
//
// Like Task, a Registry must only be used from the host goroutine.
type Registry struct {
	host   ports.ProcessHost
	ticker ports.Ticker
	logger ports.Logger

	maxCommandLine int

	tasks map[string]*Task
	order []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithMaxCommandLine sets the command line length limit for every task the registry creates.
func WithMaxCommandLine(n int) Option {
	return func(r *Registry) {
		r.maxCommandLine = n
	}
}

// NewRegistry creates an empty Registry whose tasks spawn through host and tick through ticker.
func NewRegistry(host ports.ProcessHost, ticker ports.Ticker, logger ports.Logger, opts ...Option) *Registry {
	r := &Registry{
		host:           host,
		ticker:         ticker,
		logger:         logger,
		maxCommandLine: domain.DefaultMaxCommandLine,
		tasks:          make(map[string]*Task),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetMaxCommandLine changes the command line length limit for tasks created afterwards.
// n <= 0 selects domain.DefaultMaxCommandLine.
func (r *Registry) SetMaxCommandLine(n int) {
	if n <= 0 {
		n = domain.DefaultMaxCommandLine
	}
	r.maxCommandLine = n
}

// CreateTask creates and stores an idle task. It does not launch it.
// Creating a second task with an existing name is a programming error and panics.
func (r *Registry) CreateTask(name, executablePath, arguments string) *Task {
	if _, exists := r.tasks[name]; exists {
		panic(zerr.With(zerr.Wrap(domain.ErrTaskAlreadyExists, "duplicate task name"), "task_name", name))
	}

	t := newTask(name, executablePath, arguments, r.maxCommandLine, r.host, r.ticker, r.logger)
	r.tasks[name] = t
	r.order = append(r.order, name)
	return t
}

// GetTask looks a task up by name.
func (r *Registry) GetTask(name string) (*Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// Names returns the task names in creation order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Tasks returns the tasks in creation order.
func (r *Registry) Tasks() []*Task {
	tasks := make([]*Task, 0, len(r.order))
	for _, name := range r.order {
		tasks = append(tasks, r.tasks[name])
	}
	return tasks
}

// Len returns the number of tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// AllCompleted reports whether every task reached COMPLETED.
func (r *Registry) AllCompleted() bool {
	for _, t := range r.tasks {
		if !t.IsCompleted() {
			return false
		}
	}
	return true
}

// Close stops every task. No child process or handle outlives it. It is idempotent.
func (r *Registry) Close() {
	for _, t := range r.Tasks() {
		t.Stop()
	}
}
