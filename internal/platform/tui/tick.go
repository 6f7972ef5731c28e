// Package tui provides the Bubble Tea host for the snake game. It maps keys
// and mouse drags to actions, feeds display frames to the engine driver and
// renders the board, overlays and scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is one display frame.
type FrameMsg time.Time

// CountdownMsg counts down to the automatic start.
type CountdownMsg struct{}

// frameCmd returns a Bubble Tea command that sends a frame message at the given rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func countdownCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return CountdownMsg{}
	})
}
