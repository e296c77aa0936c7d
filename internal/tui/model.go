package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/ptask/internal/adapters/ticker"
	"go.trai.ch/ptask/internal/engine/task"
)

const (
	taskListWidthRatio = 0.3
	logPaneBorderWidth = 4
)

// Model is the Bubble Tea model of the frame host. Its Update runs on a single
// goroutine, which is the only one that touches the tasks.
type Model struct {
	registry *task.Registry
	loop     *ticker.Loop
	interval time.Duration

	last        time.Time
	interrupted bool

	spinner        spinner.Model
	viewport       viewport.Model
	activeTaskName string
}

// NewModel creates a frame host that ticks loop every interval until every task in
// registry is completed.
func NewModel(registry *task.Registry, loop *ticker.Loop, interval time.Duration) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = taskRunningStyle

	return &Model{
		registry: registry,
		loop:     loop,
		interval: interval,
		spinner:  s,
		viewport: viewport.New(0, 0),
	}
}

// Interrupted reports whether the user quit before every task completed.
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// Init starts the frame clock and the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForFrame(m.interval),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgFrame:
		return m.handleFrame(msg)
	}
	return m, nil
}

// handleKeyMsg stops every task when the user quits.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if !m.registry.AllCompleted() {
			m.interrupted = true
		}
		m.registry.Close()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Split screen: 30% for task list, 70% for logs
	listWidth := int(float64(msg.Width) * taskListWidthRatio)
	m.viewport.Width = msg.Width - listWidth - logPaneBorderWidth
	m.viewport.Height = msg.Height - 2
	return m, nil
}

func (m *Model) handleFrame(msg MsgFrame) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.last.IsZero() {
		dt = msg.At.Sub(m.last)
	}
	m.last = msg.At

	m.loop.Tick(dt)
	m.refreshLogs()

	if m.registry.AllCompleted() {
		return m, tea.Quit
	}
	return m, WaitForFrame(m.interval)
}

// refreshLogs focuses the first running task, or keeps the last focus once nothing runs.
func (m *Model) refreshLogs() {
	var active *task.Task
	for _, t := range m.registry.Tasks() {
		if t.IsRunning() {
			active = t
			break
		}
	}
	if active == nil {
		if t, ok := m.registry.GetTask(m.activeTaskName); ok {
			active = t
		}
	}
	if active == nil {
		return
	}

	m.activeTaskName = active.Name()
	m.viewport.SetContent(string(active.Output()))
	m.viewport.GotoBottom()
}
