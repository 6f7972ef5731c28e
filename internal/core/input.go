package core

// Action is a semantic intent produced by a host from raw keys, mouse drags or
// touch swipes. Games consume actions, never physical keys.
type Action int

const (
	ActionNone   Action = iota
	ActionUp            // W, Up arrow, swipe up
	ActionDown          // S, Down arrow, swipe down
	ActionLeft          // A, Left arrow, swipe left
	ActionRight         // D, Right arrow, swipe right
	ActionToggle        // Space, Enter - start / restart / pause toggle
	ActionMute          // M - toggle sound effects
	ActionMusic         // N - toggle background music
	ActionScores        // Tab - show the scoreboard
	ActionBack          // B, Escape - leave the current overlay
	ActionQuit          // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionToggle:
		return "Toggle"
	case ActionMute:
		return "Mute"
	case ActionMusic:
		return "Music"
	case ActionScores:
		return "Scores"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
