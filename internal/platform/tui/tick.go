// Package tui hosts the Breakout engine in a terminal: the Bubble Tea frame
// loop, touch emulation from keys and mouse, the cell renderer, the
// scoreboard, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// LevelsChangedMsg carries a reloaded level set from the watcher.
type LevelsChangedMsg struct {
	Layouts []breakout.Layout
	Err     error
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
