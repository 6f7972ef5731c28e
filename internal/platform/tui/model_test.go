package tui

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Audio.Enabled = false
	return NewModel(Options{
		Config:        cfg,
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 30, FPS: 60, Seed: 7},
		Store:         store,
		ScreenshotDir: t.TempDir(),
	})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return mm
}

// frame sends a frame message offset from the model's frame origin.
func frame(m Model, at time.Duration) FrameMsg {
	return FrameMsg(m.st.origin.Add(at))
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runes("a"), core.ActionLeft, false},
		{runes("d"), core.ActionRight, false},
		{space, core.ActionToggle, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionToggle, false},
		{runes("p"), core.ActionToggle, false},
		{runes("m"), core.ActionMute, false},
		{runes("n"), core.ActionMusic, false},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionScores, false},
		{tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{runes("z"), core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.expected || quit != tc.quit {
			t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.expected, tc.quit)
		}
	}
}

func TestCellStylesKeepText(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawText(0, 0, "ab", core.ColorText)
	scr.DrawText(2, 0, "cd", core.ColorFood)
	scr.DrawText(0, 1, "xyz", core.ColorDefault)

	out := newCellStyles(render.DefaultPalette()).render(scr)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("render() missing %q in %q", want, out)
		}
	}
}

func TestCellStylesUsePalette(t *testing.T) {
	p := render.DefaultPalette()
	p.Food = color.RGBA{R: 0xFF, A: 0xFF}
	styles := newCellStyles(p)

	if fg := styles[core.ColorFood].GetForeground(); fg != lipgloss.Color("#FF0000") {
		t.Errorf("food foreground = %v, expected #FF0000", fg)
	}
	if bg := styles[core.ColorSnake].GetBackground(); bg != lipgloss.Color("#02017F") {
		t.Errorf("snake background = %v, expected board #02017F", bg)
	}
	if styles.style(core.Color(200)).GetBold() {
		t.Error("unknown colors should fall back to the plain style")
	}
}

func TestSpaceStartsAndCancelsCountdown(t *testing.T) {
	m := newTestModel(t, nil)
	if m.st.countdown != 3 {
		t.Fatalf("countdown = %d, expected 3", m.st.countdown)
	}

	m = update(t, m, space)
	if m.Session().Status() != snake.StatusRunning {
		t.Errorf("Status() = %v, expected running", m.Session().Status())
	}
	if m.st.countdown != 0 {
		t.Errorf("countdown = %d, expected 0 after manual start", m.st.countdown)
	}
}

func TestCountdownStartsGame(t *testing.T) {
	m := newTestModel(t, nil)

	for i := 0; i < 2; i++ {
		m = update(t, m, CountdownMsg{})
		if m.Session().Started() {
			t.Fatalf("started after %d ticks, expected 3", i+1)
		}
	}
	m = update(t, m, CountdownMsg{})
	if !m.Session().Started() {
		t.Error("countdown did not start the game")
	}

	// Extra ticks are ignored.
	m = update(t, m, CountdownMsg{})
	if m.Session().Status() != snake.StatusRunning {
		t.Errorf("Status() = %v, expected running", m.Session().Status())
	}
}

func TestFramesStepTheSession(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, space)

	before, _ := m.Session().Snapshot().Head()
	m = update(t, m, frame(m, 50*time.Millisecond))
	if steps := m.Session().Snapshot().Steps; steps != 0 {
		t.Errorf("Steps = %d after 50ms, expected 0", steps)
	}
	m = update(t, m, frame(m, 130*time.Millisecond))
	after, _ := m.Session().Snapshot().Head()
	if after.X != before.X+1 || after.Y != before.Y {
		t.Errorf("head moved %v -> %v, expected one cell right", before, after)
	}
}

func TestGameOverSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = update(t, m, space)

	at := time.Duration(0)
	for i := 0; i < 200 && !m.Session().GameOver(); i++ {
		at += 200 * time.Millisecond
		m = update(t, m, frame(m, at))
	}
	if !m.Session().GameOver() {
		t.Fatal("snake never hit the wall")
	}

	// More frames after game over must not add records.
	m = update(t, m, frame(m, at+time.Second))

	scores, err := store.LoadScores()
	if err != nil {
		t.Fatalf("LoadScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 saved score, got %d", len(scores))
	}
	if scores[0].Name != storage.DefaultName {
		t.Errorf("Name = %q, expected %q", scores[0].Name, storage.DefaultName)
	}
	if m.st.last == nil || m.st.rank != 1 {
		t.Errorf("last = %v, rank = %d, expected rank 1", m.st.last, m.st.rank)
	}

	// Space restarts and clears the result overlay.
	m = update(t, m, space)
	if m.Session().Status() != snake.StatusRunning || m.st.last != nil {
		t.Errorf("restart: status %v, last %v", m.Session().Status(), m.st.last)
	}
}

func TestScoreboardPausesAndResumes(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, space)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showScores {
		t.Fatal("tab did not open the scoreboard")
	}
	if m.Session().Status() != snake.StatusPaused {
		t.Errorf("Status() = %v, expected paused under the scoreboard", m.Session().Status())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.showScores {
		t.Fatal("esc did not close the scoreboard")
	}
	if m.Session().Status() != snake.StatusRunning {
		t.Errorf("Status() = %v, expected running after closing", m.Session().Status())
	}
}

func TestCountdownHoldsUnderScoreboard(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	for i := 0; i < 3; i++ {
		m = update(t, m, CountdownMsg{})
	}
	for i := 1; i <= 200; i++ {
		m = update(t, m, frame(m, time.Duration(i)*20*time.Millisecond))
	}
	if st := m.Session().Status(); st != snake.StatusNotStarted {
		t.Fatalf("Status() = %v behind the scoreboard, expected not started", st)
	}
	if steps := m.Session().Snapshot().Steps; steps != 0 {
		t.Fatalf("Steps = %d behind the scoreboard, expected 0", steps)
	}
	if m.st.countdown != 3 {
		t.Errorf("countdown = %d, expected it held at 3", m.st.countdown)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	for i := 0; i < 3; i++ {
		m = update(t, m, CountdownMsg{})
	}
	if m.Session().Status() != snake.StatusRunning {
		t.Errorf("Status() = %v after closing and counting down, expected running", m.Session().Status())
	}
}

func TestScoreboardKeepsUserPause(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, space)
	m = update(t, m, runes("p"))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.Session().Status() != snake.StatusPaused {
		t.Errorf("Status() = %v, expected paused", m.Session().Status())
	}
}

func TestFocusPausesAndRestores(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, space)

	m = update(t, m, tea.BlurMsg{})
	if m.Session().Status() != snake.StatusPaused {
		t.Errorf("Status() = %v after blur, expected paused", m.Session().Status())
	}
	m = update(t, m, tea.FocusMsg{})
	if m.Session().Status() != snake.StatusRunning {
		t.Errorf("Status() = %v after focus, expected running", m.Session().Status())
	}
}

func TestMouseDragSteers(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, space)

	m = update(t, m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 10, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 10, Y: 12, Action: tea.MouseActionRelease})

	m = update(t, m, frame(m, 200*time.Millisecond))
	if d := m.Session().Direction(); d != snake.Down {
		t.Errorf("Direction() = %v, expected down", d)
	}
}

func TestAudioToggles(t *testing.T) {
	m := newTestModel(t, nil)

	if strings.Contains(m.View(), "♪") {
		t.Error("HUD shows the music marker with music off")
	}

	sfx := m.player.Settings().SFX
	m = update(t, m, runes("m"))
	if m.player.Settings().SFX == sfx {
		t.Error("m did not toggle sound effects")
	}
	m = update(t, m, runes("n"))
	if !m.player.Settings().BGM {
		t.Error("n did not enable music")
	}
	if !strings.Contains(m.st.flash, "music") {
		t.Errorf("flash = %q, expected music notice", m.st.flash)
	}
	if !strings.Contains(m.View(), "♪") {
		t.Error("HUD should mark playing music")
	}
}

func TestViewShowsBoardAndOverlay(t *testing.T) {
	m := newTestModel(t, nil)

	view := m.View()
	for _, want := range []string{"SCORE 0", "GET READY", "PLAYER"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(m.View(), "too small") {
		t.Error("View() should report a terminal that is too small")
	}
}

func TestScreenshot(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	for _, ext := range []string{".txt", ".png"} {
		matches, err := filepath.Glob(filepath.Join(m.opts.ScreenshotDir, "snake_*"+ext))
		if err != nil || len(matches) != 1 {
			t.Errorf("expected one %s screenshot, got %v (%v)", ext, matches, err)
			continue
		}
		if info, err := os.Stat(matches[0]); err != nil || info.Size() == 0 {
			t.Errorf("screenshot %s is empty", matches[0])
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0:00"},
		{65 * time.Second, "1:05"},
		{1500 * time.Millisecond, "0:02"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tc := range tests {
		if got := formatClock(tc.d); got != tc.expected {
			t.Errorf("formatClock(%v) = %q, expected %q", tc.d, got, tc.expected)
		}
	}
}
