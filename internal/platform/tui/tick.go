// Package tui provides the Bubble Tea front end for 2048: the board
// screen, the leaderboard table and the SSH server that serves both.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a status line stays on screen.
const statusTimeout = 2 * time.Second

// statusExpiredMsg clears the status line if it is still the one with id.
type statusExpiredMsg struct {
	id int
}

// expireStatus returns a command that fires statusExpiredMsg after statusTimeout.
func expireStatus(id int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}
