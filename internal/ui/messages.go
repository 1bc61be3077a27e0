package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// InputMsg is emitted when a committed suggestion is written into a field.
// It is always followed by a ChangeMsg for the same commit.
type InputMsg struct {
	Field string
	Value string
}

// ChangeMsg is emitted after InputMsg once a committed value is final.
type ChangeMsg struct {
	Field string
	Value string
}

// blurCloseMsg closes owner's list unless a newer focus or blur superseded it.
type blurCloseMsg struct {
	owner *Autocomplete
	token uint64
}

func scheduleBlurClose(owner *Autocomplete, token uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return blurCloseMsg{owner: owner, token: token}
	})
}

func commitNotifications(field, value string) tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return InputMsg{Field: field, Value: value} },
		func() tea.Msg { return ChangeMsg{Field: field, Value: value} },
	)
}

type statusClearMsg struct {
	seq int
}

func scheduleStatusClear(seq int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
