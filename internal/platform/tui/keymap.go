package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := msg.String()

	// Global quit keys
	switch k {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch k {
	case "m":
		return core.ActionMute, false
	case "n":
		return core.ActionMusic, false
	case "tab":
		return core.ActionScores, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionToggle, false
	}

	return snake.KeyAction(k), false
}

// GameKeyMap lists the in-game bindings for the help bar.
type GameKeyMap struct {
	Move   key.Binding
	Toggle key.Binding
	Sound  key.Binding
	Music  key.Binding
	Scores key.Binding
	Shot   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Toggle, k.Sound, k.Music, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Toggle},
		{k.Sound, k.Music},
		{k.Scores, k.Shot, k.Quit},
	}
}

// DefaultGameKeyMap returns the bindings MapKey understands.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"),
			key.WithHelp("←↑↓→/wasd", "steer"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "p"),
			key.WithHelp("space", "start/pause"),
		),
		Sound: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sfx"),
		),
		Music: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "music"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
