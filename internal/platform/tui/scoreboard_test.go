package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func seededStore(t *testing.T, scores ...int) (*storage.Store, []storage.ScoreRecord) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var recs []storage.ScoreRecord
	for i, sc := range scores {
		rec := storage.NewRecord("p", snake.Result{
			Score:    sc,
			Duration: time.Duration(i+1) * time.Second,
			When:     time.Now(),
		})
		if _, err := store.AddScore(rec); err != nil {
			t.Fatalf("AddScore() failed: %v", err)
		}
		if err := store.SaveBest(sc); err != nil {
			t.Fatalf("SaveBest() failed: %v", err)
		}
		recs = append(recs, rec)
	}
	return store, recs
}

func pressBoard(t *testing.T, m ScoreboardModel, msg tea.KeyMsg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	b, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected ScoreboardModel", next)
	}
	return b
}

func TestScoreboardClearNeedsTwoPresses(t *testing.T) {
	store, _ := seededStore(t, 5, 9)
	m := NewScoreboardModel(store, 100, 30)
	if len(m.scores) != 2 {
		t.Fatalf("loaded %d scores, expected 2", len(m.scores))
	}

	m = pressBoard(t, m, runes("c"))
	if len(m.scores) != 2 || !m.armed {
		t.Fatalf("first c: scores %d, armed %v", len(m.scores), m.armed)
	}
	if !strings.Contains(m.View(), "press c again") {
		t.Error("View() should ask for confirmation")
	}

	// Another key disarms.
	m = pressBoard(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressBoard(t, m, runes("c"))
	if len(m.scores) != 2 {
		t.Fatal("c after another key must not clear")
	}

	m = pressBoard(t, m, runes("c"))
	if len(m.scores) != 0 {
		t.Errorf("scores = %d after c c, expected 0", len(m.scores))
	}
	if m.best != 9 {
		t.Errorf("best = %d, expected 9 to survive clearing", m.best)
	}
}

func TestScoreboardOpenMarksRun(t *testing.T) {
	store, recs := seededStore(t, 3, 12, 7)
	m := NewScoreboardModel(store, 100, 30)

	m.Open(&recs[2])
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, expected 3", len(rows))
	}
	if rows[1][0] != "▶#2" {
		t.Errorf("rank cell = %q, expected the 7-point run marked at #2", rows[1][0])
	}
	if m.table.Cursor() != 1 {
		t.Errorf("Cursor() = %d, expected 1", m.table.Cursor())
	}
	if !strings.Contains(m.View(), "BEST 12") {
		t.Error("View() should show the best score")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty list should say so")
	}

	rec := storage.NewRecord("solo", snake.Result{Score: 4, Duration: time.Second, When: time.Now()})
	m.Open(&rec)
	if len(m.scores) != 1 || m.scores[0].Name != "SOLO" {
		t.Errorf("scores = %+v, expected only the last run", m.scores)
	}

	// Clearing without a store does nothing.
	m = pressBoard(t, m, runes("c"))
	if m.armed {
		t.Error("clear should not arm without a store")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	m = pressBoard(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.Closed() || m.Quit() {
		t.Errorf("esc: Closed() = %v, Quit() = %v", m.Closed(), m.Quit())
	}

	m.Open(nil)
	if m.Closed() {
		t.Error("Open() should reset Closed()")
	}
	m = pressBoard(t, m, runes("q"))
	if !m.Quit() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}
