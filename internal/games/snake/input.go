package snake

import (
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// DefaultSwipeThreshold is the minimum Manhattan displacement, in pixel units,
// before a drag counts as a swipe.
const DefaultSwipeThreshold = 18

// KeyAction maps a key name (as reported by Bubble Tea or a browser
// KeyboardEvent.key) to a game action.
func KeyAction(key string) core.Action {
	switch strings.ToLower(key) {
	case "up", "arrowup", "w":
		return core.ActionUp
	case "down", "arrowdown", "s":
		return core.ActionDown
	case "left", "arrowleft", "a":
		return core.ActionLeft
	case "right", "arrowright", "d":
		return core.ActionRight
	case " ", "space", "enter":
		return core.ActionToggle
	}
	return core.ActionNone
}

// ActionDirection returns the direction for a steering action.
func ActionDirection(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return Up, true
	case core.ActionDown:
		return Down, true
	case core.ActionLeft:
		return Left, true
	case core.ActionRight:
		return Right, true
	}
	return Direction{}, false
}

// Apply routes an action into the session. The toggle action starts a fresh
// session, restarts a finished one, and otherwise flips pause. It reports
// whether the action was one the session understood.
func Apply(s *Session, a core.Action) bool {
	if d, ok := ActionDirection(a); ok {
		s.SetDirection(d)
		return true
	}
	if a != core.ActionToggle {
		return false
	}

	switch s.Status() {
	case StatusNotStarted:
		s.Start()
	case StatusGameOver:
		s.Reset()
	default:
		s.TogglePause()
	}
	return true
}

// Swipe turns a stream of pointer positions into direction changes. The
// dominant axis of the displacement decides the direction, and the origin is
// re-anchored after every accepted swipe so a long drag can turn twice.
type Swipe struct {
	Threshold float64

	x, y   float64
	active bool
}

// NewSwipe returns a tracker with the given threshold, or the default when
// threshold is not positive.
func NewSwipe(threshold float64) *Swipe {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Swipe{Threshold: threshold}
}

// Begin anchors a new gesture at (x, y).
func (sw *Swipe) Begin(x, y float64) {
	sw.x, sw.y = x, y
	sw.active = true
}

// Move reports a direction once the pointer has travelled past the threshold.
func (sw *Swipe) Move(x, y float64) (Direction, bool) {
	if !sw.active {
		sw.Begin(x, y)
		return Direction{}, false
	}

	dx, dy := x-sw.x, y-sw.y
	if abs(dx)+abs(dy) < sw.Threshold {
		return Direction{}, false
	}

	var d Direction
	if abs(dx) > abs(dy) {
		d = Right
		if dx < 0 {
			d = Left
		}
	} else {
		d = Down
		if dy < 0 {
			d = Up
		}
	}

	sw.x, sw.y = x, y
	return d, true
}

// End finishes the current gesture.
func (sw *Swipe) End() {
	sw.active = false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
