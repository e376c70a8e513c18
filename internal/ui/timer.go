package ui

import (
	"time"

	"github.com/cwarden/dew/internal/reminder"

	tea "github.com/charmbracelet/bubbletea"
)

// teaTimer turns reminder timer requests into tea.Tick commands. Requests
// made while handling one message are collected and returned together.
type teaTimer struct {
	pending []tea.Cmd
}

func (t *teaTimer) Schedule(after time.Duration, ev reminder.Event) {
	t.pending = append(t.pending, tea.Tick(after, func(time.Time) tea.Msg {
		return reminderMsg{event: ev}
	}))
}

func (t *teaTimer) Flush() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := t.pending
	t.pending = nil
	return tea.Batch(cmds...)
}
