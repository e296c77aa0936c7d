// Package app implements the application layer for ptask.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.trai.ch/ptask/internal/adapters/settings"
	"go.trai.ch/ptask/internal/adapters/ticker"
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports"
	"go.trai.ch/ptask/internal/engine/task"
	"go.trai.ch/ptask/internal/tui"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader    ports.ManifestLoader
	registry  *task.Registry
	loop      *ticker.Loop
	store     ports.ResultStore
	telemetry ports.Telemetry
	logger    ports.Logger
	settings  *settings.Settings

	out        io.Writer
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	registry *task.Registry,
	loop *ticker.Loop,
	store ports.ResultStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
	cfg *settings.Settings,
) *App {
	return &App{
		loader:    loader,
		registry:  registry,
		loop:      loop,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
		settings:  cfg,
		out:       os.Stdout,
	}
}

// WithTeaOptions configures the App with custom Bubble Tea program options.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithOutput redirects task reports, which go to stdout by default.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// RunOptions configures a manifest run.
type RunOptions struct {
	// Manifest is the manifest file or a directory to search upward from.
	// Empty means the configured default.
	Manifest string
	// Names selects tasks. Empty selects every task.
	Names []string
	// TUI drives ticks from the interactive frame host instead of the plain loop.
	TUI bool
}

// Run launches the selected manifest tasks and drives them until they all complete.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	path := opts.Manifest
	if path == "" {
		path = a.settings.Manifest
	}

	manifest, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	specs, err := manifest.Select(opts.Names)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return domain.ErrNoTasks
	}

	if manifest.MaxCommandLine > 0 {
		a.registry.SetMaxCommandLine(manifest.MaxCommandLine)
	}

	interval := a.settings.TickInterval
	if manifest.TickInterval > 0 {
		interval = manifest.TickInterval
	}

	return a.execute(ctx, specs, interval, opts.TUI)
}

// Exec runs a single ad-hoc task.
func (a *App) Exec(ctx context.Context, spec domain.TaskSpec, useTUI bool) error {
	return a.execute(ctx, []domain.TaskSpec{spec}, a.settings.TickInterval, useTUI)
}

// Close flushes telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}

type tracked struct {
	task   *task.Task
	vertex ports.Vertex
}

type completion struct {
	info   domain.TaskInfo
	output []byte
	vertex ports.Vertex
}

func (a *App) execute(ctx context.Context, specs []domain.TaskSpec, interval time.Duration, useTUI bool) error {
	runID := uuid.NewString()
	a.logger.Debug(fmt.Sprintf("starting run %s with %d task(s)", runID, len(specs)))

	tasks := make([]tracked, 0, len(specs))
	for _, spec := range specs {
		t := a.registry.CreateTask(spec.Name, spec.Executable, spec.Args)
		_, vertex := a.telemetry.Record(ctx, spec.Name)
		t.TeeOutput(vertex.Stdout())
		tasks = append(tasks, tracked{task: t, vertex: vertex})
	}

	completed := make(chan completion, len(tasks))
	rep := newReporter(tasks, completed)

	// The reporter registers after the tasks so it observes each tick's completions.
	for _, tr := range tasks {
		tr.task.Run()
	}
	a.loop.Register(rep)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(completed)
		defer a.loop.Unregister(rep)

		err := a.host(gctx, interval, useTUI)

		a.registry.Close()
		rep.Update(0)
		return err
	})

	var persistErr error
	g.Go(func() error {
		for c := range completed {
			persistErr = errors.Join(persistErr, a.persist(runID, c))
		}
		return nil
	})

	hostErr := g.Wait()

	a.report(tasks)

	if hostErr != nil {
		return zerr.Wrap(hostErr, "run interrupted")
	}
	if persistErr != nil {
		return zerr.Wrap(persistErr, "failed to persist results")
	}

	var failed []string
	for _, tr := range tasks {
		if !tr.task.Info().Succeeded() {
			failed = append(failed, tr.task.Name())
		}
	}
	if len(failed) > 0 {
		names := strings.Join(failed, ", ")
		return zerr.With(zerr.Wrap(domain.ErrTasksFailed, "run finished with failures in "+names), "tasks", names)
	}
	return nil
}

// host drives ticks on the calling goroutine until every task completes or ctx is done.
func (a *App) host(ctx context.Context, interval time.Duration, useTUI bool) error {
	if !useTUI {
		return a.loop.RunUntil(ctx, interval, a.registry.AllCompleted)
	}

	model := tui.NewModel(a.registry, a.loop, interval)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
	p := tea.NewProgram(model, opts...)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return zerr.Wrap(err, "frame host failed")
	}
	if model.Interrupted() {
		return context.Canceled
	}
	return nil
}

func (a *App) persist(runID string, c completion) error {
	if c.info.Succeeded() {
		c.vertex.Complete(nil)
	} else {
		c.vertex.Complete(zerr.With(zerr.New("task did not succeed"), "result_code", c.info.ResultCode))
	}

	if err := a.store.Put(domain.NewTaskResult(runID, c.info), c.output); err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to store task result"), "task_name", c.info.Name)
		a.logger.Error(err)
		return err
	}
	return nil
}

func (a *App) report(tasks []tracked) {
	for _, tr := range tasks {
		info := tr.task.Info()
		_, _ = fmt.Fprintf(a.out, "==> %s: %s\n", info.Name, describe(info))
		if output := tr.task.Output(); len(output) > 0 {
			_, _ = a.out.Write(output)
			if output[len(output)-1] != '\n' {
				_, _ = io.WriteString(a.out, "\n")
			}
		}
	}
}

func describe(info domain.TaskInfo) string {
	switch {
	case info.Stopped:
		return fmt.Sprintf("stopped (result %d)", info.ResultCode)
	case info.LaunchError != nil:
		return fmt.Sprintf("launch failed (result %d): %v", info.ResultCode, info.LaunchError)
	case !info.HasResult:
		return "no result"
	default:
		return fmt.Sprintf("exited with %d after %s", info.ResultCode, info.Duration().Round(time.Millisecond))
	}
}
