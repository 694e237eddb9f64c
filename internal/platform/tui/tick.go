// Package tui provides the Bubble Tea integration for Bubble Pop.
// It handles the terminal UI loop, input mapping, level selection and
// progress screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game frame.
// Gen identifies the tick loop that produced it; a model drops ticks from
// loops it has since replaced so that restarting never runs two loops.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick for loop gen
// after a frame interval at the given rate.
func tickCmd(gen, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
