package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/ptask/internal/engine/task"
)

// View renders the task list next to the output of the focused task.
func (m *Model) View() string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.taskList(),
		m.logPane(),
	)
}

func (m *Model) taskList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("TASKS") + "\n\n")

	for _, t := range m.registry.Tasks() {
		style, icon, suffix := m.status(t)

		line := fmt.Sprintf("%s %s%s", icon, t.Name(), suffix)
		if t.Name() == m.activeTaskName {
			line = "> " + line
		} else {
			line = "  " + line
		}

		s.WriteString(style.Render(line) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) status(t *task.Task) (lipgloss.Style, string, string) {
	switch {
	case t.IsIdle():
		return taskPendingStyle, "○", ""
	case t.IsRunning():
		return taskRunningStyle, m.spinner.View(), ""
	}

	info := t.Info()
	switch {
	case info.Stopped:
		return taskStoppedStyle, "■", " (stopped)"
	case info.Succeeded():
		return taskDoneStyle, "✓", ""
	case info.LaunchError != nil:
		return taskErrorStyle, "✗", " (launch failed)"
	case info.HasResult:
		return taskErrorStyle, "✗", fmt.Sprintf(" (exit %d)", info.ResultCode)
	default:
		return taskStoppedStyle, "■", ""
	}
}

func (m *Model) logPane() string {
	var header string
	if m.activeTaskName != "" {
		header = titleStyle.Render("OUTPUT: " + m.activeTaskName)
	} else {
		header = titleStyle.Render("OUTPUT (Waiting...)")
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			m.viewport.View(),
		),
	)
}
