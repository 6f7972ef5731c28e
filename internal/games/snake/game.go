// Package snake implements the snake simulation: the grid model, the session
// state machine, the frame-driven loop driver and the input adapter.
//
// Nothing here talks to a terminal, a speaker or a database. Hosts inject those
// as small interfaces and drive the session from a single goroutine.
package snake

import (
	"math/rand"
	"time"
)

// Status is the lifecycle state of a session.
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Sound plays one-shot effects. Implementations decide whether they are muted.
type Sound interface {
	PlayEat()
}

// BestStore is the durable best-score cell.
type BestStore interface {
	Best() int
	SetBest(score int)
}

// Clock supplies wall time for session durations.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Result is the terminal event emitted once when a session ends.
type Result struct {
	Score    int
	Duration time.Duration
	When     time.Time
}

// Speed is the tick-interval policy.
type Speed struct {
	Initial time.Duration // interval at the start of a session
	Min     time.Duration // floor, never undercut
	Step    time.Duration // decrease applied on a speed-up
	Every   int           // speed up whenever score is a multiple of Every
}

// DefaultSpeed returns 120ms ticks, 6ms faster every 4 points, floored at 60ms.
func DefaultSpeed() Speed {
	return Speed{
		Initial: 120 * time.Millisecond,
		Min:     60 * time.Millisecond,
		Step:    6 * time.Millisecond,
		Every:   4,
	}
}

// next returns the interval after the score reached score.
func (sp Speed) next(current time.Duration, score int) time.Duration {
	if sp.Every <= 0 || score%sp.Every != 0 {
		return current
	}
	return max(current-sp.Step, sp.Min)
}

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	Grid       Grid
	Speed      Speed
	Seed       int64
	Clock      Clock
	Sound      Sound
	Best       BestStore
	OnGameOver func(Result)
}

// Session is one running game. It is not safe for concurrent use; every
// operation must come from the host's single event goroutine.
type Session struct {
	grid  Grid
	speed Speed
	rng   *rand.Rand
	clock Clock
	sound Sound
	store BestStore
	onEnd func(Result)

	snake   []Cell // tail first, head last
	dir     Direction
	pending Direction
	food    Cell
	hasFood bool
	score   int
	best    int
	tick    time.Duration

	started   bool
	running   bool
	gameOver  bool
	reported  bool
	startedAt time.Time
	endedAt   time.Time
	steps     uint64
}

// New creates a session in the NotStarted state with a centered three-cell
// snake heading right and a freshly placed food.
func New(opts Options) *Session {
	if opts.Grid.Cols <= 0 || opts.Grid.Rows <= 0 {
		opts.Grid = DefaultGrid()
	}
	if opts.Speed.Initial <= 0 {
		opts.Speed = DefaultSpeed()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}

	s := &Session{
		grid:  opts.Grid,
		speed: opts.Speed,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		clock: opts.Clock,
		sound: opts.Sound,
		store: opts.Best,
		onEnd: opts.OnGameOver,
	}
	if s.store != nil {
		s.best = s.store.Best()
	}

	s.layout()
	s.running = true
	s.startedAt = s.clock.Now()
	return s
}

// layout places the initial snake, direction, food, score and speed.
func (s *Session) layout() {
	midX := s.grid.Cols / 2
	midY := s.grid.Rows / 2
	s.snake = []Cell{
		{X: midX - 1, Y: midY},
		{X: midX, Y: midY},
		{X: midX + 1, Y: midY},
	}
	s.dir = Right
	s.pending = Right
	s.food, s.hasFood = PlaceFood(s.rng, s.grid, s.snake)
	s.score = 0
	s.tick = s.speed.Initial
	s.steps = 0
}

// Start moves a fresh session to Running. It is a no-op once started.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.running = true
	s.startedAt = s.clock.Now()
}

// SetDirection buffers d for the next step. The exact reverse of the current
// direction is rejected, as is any change after game over.
func (s *Session) SetDirection(d Direction) bool {
	if s.gameOver || !d.Valid() {
		return false
	}
	if d.IsOpposite(s.dir) {
		return false
	}
	s.pending = d
	return true
}

// Step advances the snake by one cell. It is a no-op unless Running.
func (s *Session) Step() {
	if !s.started || !s.running || s.gameOver {
		return
	}

	s.dir = s.pending
	head := s.snake[len(s.snake)-1].Add(s.dir)

	if !s.grid.Contains(head) || s.occupies(head) {
		s.finish()
		return
	}

	s.steps++
	s.snake = append(s.snake, head)

	if s.hasFood && CellsEqual(head, s.food) {
		s.score++
		if s.sound != nil {
			s.sound.PlayEat()
		}
		s.food, s.hasFood = PlaceFood(s.rng, s.grid, s.snake)
		s.tick = s.speed.next(s.tick, s.score)
		return
	}

	copy(s.snake, s.snake[1:])
	s.snake = s.snake[:len(s.snake)-1]
}

// occupies reports whether any segment, the tail included, sits on c.
func (s *Session) occupies(c Cell) bool {
	for _, seg := range s.snake {
		if CellsEqual(seg, c) {
			return true
		}
	}
	return false
}

// finish enters GameOver and emits the terminal event at most once.
func (s *Session) finish() {
	s.gameOver = true
	s.running = false

	if s.score > s.best {
		s.best = s.score
		if s.store != nil {
			s.store.SetBest(s.score)
		}
	}

	if s.reported {
		return
	}
	s.reported = true
	s.endedAt = s.clock.Now()
	if s.onEnd != nil {
		s.onEnd(Result{
			Score:    s.score,
			Duration: s.endedAt.Sub(s.startedAt),
			When:     s.endedAt,
		})
	}
}

// Reset replaces the session state wholesale and starts running immediately.
func (s *Session) Reset() {
	s.layout()
	s.gameOver = false
	s.reported = false
	s.started = true
	s.running = true
	s.startedAt = s.clock.Now()
}

// Pause stops ticking. It has no effect after game over.
func (s *Session) Pause() {
	if s.gameOver {
		return
	}
	s.running = false
}

// Resume restarts ticking for a started, unfinished session.
func (s *Session) Resume() {
	if !s.started || s.gameOver {
		return
	}
	s.running = true
}

// TogglePause flips between Running and Paused.
func (s *Session) TogglePause() {
	if s.running {
		s.Pause()
	} else {
		s.Resume()
	}
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	switch {
	case s.gameOver:
		return StatusGameOver
	case !s.started:
		return StatusNotStarted
	case s.running:
		return StatusRunning
	default:
		return StatusPaused
	}
}

// Started reports whether Start or Reset has been called.
func (s *Session) Started() bool { return s.started }

// Running reports whether steps currently advance the snake.
func (s *Session) Running() bool { return s.running }

// GameOver reports whether the session has ended.
func (s *Session) GameOver() bool { return s.gameOver }

// Score returns the points scored this session.
func (s *Session) Score() int { return s.score }

// Best returns the best score known to this session.
func (s *Session) Best() int { return s.best }

// TickInterval returns the current simulation interval.
func (s *Session) TickInterval() time.Duration { return s.tick }

// Direction returns the direction applied on the last step.
func (s *Session) Direction() Direction { return s.dir }

// Grid returns the playfield size.
func (s *Session) Grid() Grid { return s.grid }

// Elapsed returns the time since the session (re)started, frozen at game over.
func (s *Session) Elapsed() time.Duration {
	if s.gameOver {
		return s.endedAt.Sub(s.startedAt)
	}
	return s.clock.Now().Sub(s.startedAt)
}
