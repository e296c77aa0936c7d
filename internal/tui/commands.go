// Package tui provides the terminal frame host that drives process tasks and shows their progress.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// WaitForFrame returns a Bubble Tea command that delivers the next MsgFrame after interval.
func WaitForFrame(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return MsgFrame{At: t}
	})
}
