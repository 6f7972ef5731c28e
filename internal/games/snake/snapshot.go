package snake

import "time"

// Snapshot is a read-only copy of the session for render sinks, tests and replays.
type Snapshot struct {
	Grid         Grid
	Snake        []Cell // tail first, head last
	Dir          Direction
	Food         Cell
	HasFood      bool
	Score        int
	Best         int
	TickInterval time.Duration
	Status       Status
	Steps        uint64
	Elapsed      time.Duration
}

// Head returns the head cell, or false for an empty body.
func (s Snapshot) Head() (Cell, bool) {
	if len(s.Snake) == 0 {
		return Cell{}, false
	}
	return s.Snake[len(s.Snake)-1], true
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	body := make([]Cell, len(s.snake))
	copy(body, s.snake)

	return Snapshot{
		Grid:         s.grid,
		Snake:        body,
		Dir:          s.dir,
		Food:         s.food,
		HasFood:      s.hasFood,
		Score:        s.score,
		Best:         s.best,
		TickInterval: s.tick,
		Status:       s.Status(),
		Steps:        s.steps,
		Elapsed:      s.Elapsed(),
	}
}
