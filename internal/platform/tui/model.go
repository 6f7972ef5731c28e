package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	flashFor   = 2 * time.Second
	overlayTop = 5 // entries of the score list shown on the game over overlay
	hudRows    = 1
	helpRows   = 1
)

// Options configures a game Model.
type Options struct {
	Config        config.Config
	Runtime       core.RuntimeConfig
	Store         *storage.Store // nil plays without persistence
	Audio         *audio.Player  // nil is silent
	Logger        *log.Logger    // nil discards
	Name          string         // player name on score records, defaults to the config
	ScreenshotDir string         // defaults to ~/.snake/screenshots
}

// state is shared by every copy of the Model that Bubble Tea makes.
type state struct {
	driver  *snake.Driver
	origin  time.Time
	pending []snake.Result

	last *storage.ScoreRecord
	rank int // 1-based position of last in top, 0 when it was not kept
	top  []storage.ScoreRecord

	countdown    int
	resumeScores bool // session was running when the scoreboard opened

	flash      string
	flashUntil time.Time
}

func (st *state) onGameOver(r snake.Result) {
	st.pending = append(st.pending, r)
}

// Model is the Bubble Tea model for one snake game.
type Model struct {
	opts     Options
	cfg      config.Config
	rc       core.RuntimeConfig
	name     string
	player   *audio.Player
	logger   *log.Logger
	palette  render.Palette
	styles   cellStyles
	screen   *core.Screen
	keys     *KeyMapper
	gameKeys GameKeyMap
	help     help.Model
	swipe    *snake.Swipe
	st       *state

	board      ScoreboardModel
	showScores bool
	quitting   bool
}

// NewModel creates a game model. The game waits for the countdown or a key
// before it starts.
func NewModel(opts Options) Model {
	cfg := opts.Config
	rc := opts.Runtime
	// Use time-based seed if not specified
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.FPS <= 0 {
		rc.FPS = cfg.Render.FPS
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Audio
	if player == nil {
		player = audio.NewPlayer(nil, cfg.AudioSettings())
	}
	name := opts.Name
	if name == "" {
		name = cfg.Player.Name
	}

	st := &state{
		origin:    time.Now(),
		countdown: cfg.Player.Countdown,
	}

	var best snake.BestStore
	if opts.Store != nil {
		best = storage.NewBestCell(opts.Store, logger)
	}

	session := snake.New(snake.Options{
		Grid:       cfg.Grid(),
		Speed:      cfg.SpeedPolicy(),
		Seed:       rc.Seed,
		Sound:      player,
		Best:       best,
		OnGameOver: st.onGameOver,
	})
	st.driver = snake.NewDriver(session)

	palette, err := cfg.Palette()
	if err != nil {
		logger.Warn("bad palette, using defaults", "err", err)
		palette = render.DefaultPalette()
	}

	h := help.New()
	h.Width = rc.ScreenW

	return Model{
		opts:     opts,
		cfg:      cfg,
		rc:       rc,
		name:     storage.NormalizeName(name),
		player:   player,
		logger:   logger,
		palette:  palette,
		styles:   newCellStyles(palette),
		screen:   core.NewScreen(rc.ScreenW, max(rc.ScreenH-helpRows, 0)),
		keys:     NewKeyMapper(),
		gameKeys: DefaultGameKeyMap(),
		help:     h,
		swipe:    snake.NewSwipe(cfg.Input.SwipeThreshold),
		st:       st,
		board:    NewScoreboardModel(opts.Store, rc.ScreenW, rc.ScreenH),
	}
}

// Session returns the engine session.
func (m Model) Session() *snake.Session {
	return m.st.driver.Session()
}

// Init starts the frame loop, the countdown and the music.
func (m Model) Init() tea.Cmd {
	m.player.StartMusic()

	cmds := []tea.Cmd{frameCmd(m.rc.FPS)}
	if m.st.countdown > 0 {
		cmds = append(cmds, countdownCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScores {
			return m.updateScores(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.FocusMsg:
		m.st.driver.OnVisibilityChange(true)
		m.player.Music().Restore()
		return m, nil

	case tea.BlurMsg:
		m.st.driver.OnVisibilityChange(false)
		m.player.Music().Suspend()
		return m, nil

	case FrameMsg:
		m.st.driver.OnFrame(time.Time(msg).Sub(m.st.origin))
		m.drainResults()
		return m, frameCmd(m.rc.FPS)

	case CountdownMsg:
		return m.handleCountdown()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	s := m.Session()
	switch action {
	case core.ActionMute:
		m.setFlash(onOff("sfx", m.player.ToggleSFX()))
	case core.ActionMusic:
		m.setFlash(onOff("music", m.player.ToggleBGM()))
	case core.ActionScores:
		m.openScores()
	case core.ActionNone, core.ActionBack:
	default:
		prev := s.Status()
		if !snake.Apply(s, action) {
			return m, nil
		}
		if action == core.ActionToggle {
			m.st.countdown = 0
			if prev == snake.StatusGameOver {
				m.st.last, m.st.rank = nil, 0
			}
		}
	}
	return m, nil
}

// handleMouse turns left-button drags into swipes. Cell coordinates are
// scaled to approximate pixels so the swipe threshold means the same thing
// as on a touch screen.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px := float64(msg.X) * m.cfg.Input.CellPxX
	py := float64(msg.Y) * m.cfg.Input.CellPxY

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.swipe.Begin(px, py)
		}
	case tea.MouseActionMotion:
		if d, ok := m.swipe.Move(px, py); ok {
			m.Session().SetDirection(d)
		}
	case tea.MouseActionRelease:
		m.swipe.End()
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.rc.ScreenW = msg.Width
	m.rc.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 0))
	m.help.Width = msg.Width
	m.board.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleCountdown counts down to the start. The count holds while the
// scoreboard covers the board.
func (m Model) handleCountdown() (tea.Model, tea.Cmd) {
	s := m.Session()
	if m.st.countdown <= 0 || s.Status() != snake.StatusNotStarted {
		m.st.countdown = 0
		return m, nil
	}
	if m.showScores {
		return m, countdownCmd()
	}

	m.st.countdown--
	if m.st.countdown > 0 {
		return m, countdownCmd()
	}
	s.Start()
	m.logger.Debug("game started", "player", m.name)
	return m, nil
}

func (m Model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if b, ok := next.(ScoreboardModel); ok {
		m.board = b
	}

	if m.board.Quit() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.Closed() {
		m.closeScores()
	}
	return m, cmd
}

// openScores shows the scoreboard and holds the game while it is up.
func (m *Model) openScores() {
	s := m.Session()
	m.st.resumeScores = s.Running() && s.Started()
	s.Pause()

	m.board.Open(m.st.last)
	m.showScores = true
}

func (m *Model) closeScores() {
	m.showScores = false
	if m.st.resumeScores && !m.st.driver.Hidden() {
		m.Session().Resume()
	}
	m.st.resumeScores = false
}

// drainResults persists finished games reported by the engine.
func (m *Model) drainResults() {
	for _, res := range m.st.pending {
		rec := storage.NewRecord(m.name, res)
		m.st.last, m.st.rank = &rec, 0
		m.logger.Info("game over",
			"player", rec.Name,
			"score", rec.Score,
			"duration", rec.Duration,
			"run", rec.RunID,
		)

		if m.opts.Store == nil {
			continue
		}
		list, err := m.opts.Store.AddScore(rec)
		if err != nil {
			m.logger.Error("cannot save score", "run", rec.RunID, "err", err)
			m.setFlash("score not saved")
			continue
		}
		m.st.top = list
		for i, r := range list {
			if r.RunID == rec.RunID {
				m.st.rank = i + 1
				break
			}
		}
	}
	m.st.pending = m.st.pending[:0]
}

func (m *Model) setFlash(text string) {
	m.st.flash = text
	m.st.flashUntil = time.Now().Add(flashFor)
}

// saveScreenshot writes the current frame as text and as a PNG render.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = config.DataPath("screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("cannot create screenshot directory", "dir", dir, "err", err)
		m.setFlash("screenshot failed")
		return
	}

	base := filepath.Join(dir, "snake_"+time.Now().Format("20060102_150405"))
	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("cannot save screenshot", "path", base+".txt", "err", err)
		m.setFlash("screenshot failed")
		return
	}

	f, err := os.Create(base + ".png")
	if err == nil {
		err = render.WritePNG(f, m.Session().Snapshot(), m.cfg.Render.CellPx, m.cfg.Render.DPR, m.palette)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		m.logger.Error("cannot save screenshot", "path", base+".png", "err", err)
		m.setFlash("screenshot failed")
		return
	}

	m.logger.Info("screenshot saved", "path", base)
	m.setFlash("saved " + filepath.Base(base))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.board.View()
	}

	if !m.draw() {
		bw, bh := render.BoardSize(m.cfg.Grid())
		return lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(
			fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
				bw, bh+hudRows+helpRows, m.rc.ScreenW, m.rc.ScreenH))
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return m.styles.render(m.screen) + "\n" + helpStyle.Render(m.help.View(m.gameKeys))
}

// draw renders the board, HUD and overlays into the screen buffer. It
// reports false when the terminal cannot fit the board.
func (m Model) draw() bool {
	snap := m.Session().Snapshot()
	bw, bh := render.BoardSize(snap.Grid)
	sw, sh := m.screen.Width(), m.screen.Height()
	if sw < bw || sh < bh+hudRows {
		return false
	}

	m.screen.Clear()
	frame := core.NewRect(0, hudRows, sw, sh-hudRows).CenteredIn(bw, bh)

	m.drawHUD(snap, frame.X, frame.Y-1, bw)
	render.DrawScreen(m.screen, snap, frame.X, frame.Y)
	m.drawOverlay(snap, frame.Inset(1))

	if m.st.flash != "" && time.Now().Before(m.st.flashUntil) && frame.Bottom() < sh {
		m.screen.DrawTextCentered(frame, frame.Bottom(), m.st.flash, core.ColorDim)
	}
	return true
}

func (m Model) drawHUD(snap snake.Snapshot, x, y, w int) {
	left := fmt.Sprintf("SCORE %d", snap.Score)
	right := fmt.Sprintf("BEST %d  %dms", snap.Best, snap.TickInterval.Milliseconds())
	if m.player.Music().Playing() {
		right = "♪ " + right
	}
	m.screen.DrawText(x, y, left, core.ColorDim)
	m.screen.DrawTextCentered(core.NewRect(x, y, w, 1), y, m.name, core.ColorDim)
	m.screen.DrawText(x+w-utf8.RuneCountInString(right), y, right, core.ColorDim)
}

func (m Model) drawOverlay(snap snake.Snapshot, inner core.Rect) {
	var lines []string
	var colors []core.Color
	add := func(text string, c core.Color) {
		lines = append(lines, text)
		colors = append(colors, c)
	}

	switch snap.Status {
	case snake.StatusNotStarted:
		if m.st.countdown > 0 {
			add(fmt.Sprintf("%d", m.st.countdown), core.ColorAlert)
			add("GET READY", core.ColorText)
		} else {
			add("PRESS SPACE TO START", core.ColorText)
		}

	case snake.StatusPaused:
		add("PAUSED", core.ColorText)
		add("space to resume", core.ColorText)

	case snake.StatusGameOver:
		add("GAME OVER", core.ColorAlert)
		add(fmt.Sprintf("SCORE %d  TIME %s", snap.Score, formatClock(snap.Elapsed)), core.ColorText)
		if m.st.rank > 0 {
			add(fmt.Sprintf("RANK #%d", m.st.rank), core.ColorText)
		}
		if n := min(len(m.st.top), overlayTop); n > 0 {
			add("", core.ColorText)
			for i, r := range m.st.top[:n] {
				add(fmt.Sprintf("%2d. %-*s %5d", i+1, storage.MaxNameLen, r.Name, r.Score), core.ColorText)
			}
		}
		add("", core.ColorText)
		add("SPACE again  TAB scores", core.ColorText)

	default:
		return
	}

	top := inner.Y + (inner.H-len(lines))/2
	for i, line := range lines {
		if line == "" {
			continue
		}
		m.screen.DrawTextCentered(inner, top+i, line, colors[i])
	}
}

func onOff(what string, on bool) string {
	if on {
		return what + " on"
	}
	return what + " off"
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.player.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drags steer the snake
		tea.WithReportFocus(),     // Pause while the terminal is in the background
	)

	_, err := p.Run()
	return err
}
