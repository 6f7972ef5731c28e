package snake

import (
	"context"
	"time"
)

// Event is a host callback run on the driver's goroutine, between frames.
type Event func(d *Driver)

// Driver advances a Session from per-frame callbacks. Frames arrive at the
// display rate; the session steps only when a full tick interval has passed,
// so several frames render the same logical state between ticks.
type Driver struct {
	session  *Session
	lastTick time.Duration
	hidden   bool
	resume   bool // whether the session was running when the host was hidden

	// OnRender, when set, receives a snapshot after every frame.
	OnRender func(Snapshot)
}

// NewDriver wraps s.
func NewDriver(s *Session) *Driver {
	return &Driver{session: s}
}

// Session returns the driven session.
func (d *Driver) Session() *Session {
	return d.session
}

// OnFrame handles one frame with timestamp t, measured from any fixed origin.
// It reports whether the session stepped.
func (d *Driver) OnFrame(t time.Duration) bool {
	s := d.session
	stepped := false
	if s.Started() && s.Running() && !s.GameOver() {
		if t-d.lastTick >= s.TickInterval() {
			s.Step()
			d.lastTick = t
			stepped = true
		}
	}
	if d.OnRender != nil {
		d.OnRender(s.Snapshot())
	}
	return stepped
}

// OnVisibilityChange pauses on hide and restores the previous run state on
// show. A session the user paused before hiding stays paused, and a finished
// session is never resumed.
func (d *Driver) OnVisibilityChange(visible bool) {
	s := d.session
	if !visible {
		if d.hidden {
			return
		}
		d.hidden = true
		d.resume = s.Running()
		if d.resume {
			s.Pause()
		}
		return
	}

	if !d.hidden {
		return
	}
	d.hidden = false
	if d.resume && s.Started() && !s.GameOver() {
		s.Resume()
	}
	d.resume = false
}

// Hidden reports whether the host is currently hidden.
func (d *Driver) Hidden() bool {
	return d.hidden
}

// Run is a cooperative loop: it applies frames and host events one at a time
// until ctx is cancelled or frames is closed. All session mutation happens on
// the calling goroutine.
func (d *Driver) Run(ctx context.Context, frames <-chan time.Duration, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t, ok := <-frames:
			if !ok {
				return nil
			}
			d.OnFrame(t)
		case ev := <-events:
			if ev != nil {
				ev(d)
			}
		}
	}
}
