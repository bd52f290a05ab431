package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toast is a transient notification rendered above the active view until its
// timer fires.
type toast struct {
	id   int
	text string
	fail bool
}

// showToast replaces the current toast and schedules its dismissal. Each toast
// gets a fresh id so an earlier timer cannot dismiss a later toast.
func (m *Model) showToast(text string, fail bool) tea.Cmd {
	m.toastSeq++
	m.toast = toast{id: m.toastSeq, text: text, fail: fail}
	id := m.toastSeq
	return tea.Tick(m.toastDur, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) renderToast() string {
	if m.toast.text == "" {
		return ""
	}
	if m.toast.fail {
		return styles.toast.BorderForeground(styles.err.GetForeground()).Render(m.toast.text) + "\n"
	}
	return styles.toast.Render(m.toast.text) + "\n"
}
