// Package storage provides SQLite-based persistence for snake scores and the
// best-score cell. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MaxScores is the length of the kept score list.
const MaxScores = 50

const bestKey = "best"

// timeLayout is fixed width so played_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreRecord is one finished game.
type ScoreRecord struct {
	RunID    string
	Name     string
	Score    int
	Duration time.Duration
	When     time.Time
}

// Stats contains aggregated statistics over the kept score list.
type Stats struct {
	Games      int
	HighScore  int
	AvgScore   float64
	TotalTime  time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			played_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(score DESC, duration_ms ASC);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AddScore records rec and returns the updated list, best first. Rows past
// MaxScores are pruned in the same transaction.
func (s *Store) AddScore(rec ScoreRecord) ([]ScoreRecord, error) {
	if _, err := s.insertScores([]ScoreRecord{rec}, false); err != nil {
		return nil, err
	}
	return s.LoadScores()
}

// ImportScores merges records into the list, skipping run ids already
// stored, and raises the best score to the top imported one. It returns how
// many records were new.
func (s *Store) ImportScores(records []ScoreRecord) (int, error) {
	added, err := s.insertScores(records, true)
	if err != nil {
		return 0, err
	}
	top := 0
	for _, r := range records {
		top = max(top, r.Score)
	}
	if top > 0 {
		if err := s.SaveBest(top); err != nil {
			return added, err
		}
	}
	return added, nil
}

func (s *Store) insertScores(records []ScoreRecord, skipKnown bool) (int, error) {
	for _, rec := range records {
		if rec.Score < 0 || rec.Duration < 0 {
			return 0, fmt.Errorf("storage: invalid score record: score %d, duration %v", rec.Score, rec.Duration)
		}
	}

	insert := `INSERT INTO scores (run_id, name, score, duration_ms, played_at) VALUES (?, ?, ?, ?, ?)`
	if skipKnown {
		insert = `INSERT OR IGNORE INTO scores (run_id, name, score, duration_ms, played_at) VALUES (?, ?, ?, ?, ?)`
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, rec := range records {
		if rec.RunID == "" {
			rec.RunID = uuid.NewString()
		}
		if rec.When.IsZero() {
			rec.When = time.Now()
		}
		rec.Name = NormalizeName(rec.Name)

		res, err := tx.Exec(insert,
			rec.RunID, rec.Name, rec.Score, rec.Duration.Milliseconds(), rec.When.UTC().Format(timeLayout),
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save score: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if _, err := tx.Exec(
		`DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY score DESC, duration_ms ASC, id ASC LIMIT ?
		)`,
		MaxScores,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot prune scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return added, nil
}

// LoadScores returns the kept list ordered by score descending, then by
// shorter duration.
func (s *Store) LoadScores() ([]ScoreRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, name, score, duration_ms, played_at
		 FROM scores
		 ORDER BY score DESC, duration_ms ASC, id ASC
		 LIMIT ?`,
		MaxScores,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		var r ScoreRecord
		var durationMS int64
		var playedAt string
		if err := rows.Scan(&r.RunID, &r.Name, &r.Score, &durationMS, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if parsed, err := time.Parse(timeLayout, playedAt); err == nil {
			r.When = parsed
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearScores deletes the score list. The best score is kept.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LoadBest returns the durable best score, 0 if none was saved.
func (s *Store) LoadBest() (int, error) {
	var best int
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", bestKey).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return best, nil
}

// SaveBest stores score if it beats the saved best.
func (s *Store) SaveBest(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = MAX(value, excluded.value)`,
		bestKey, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// GetStats aggregates the kept score list.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var totalMS int64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(duration_ms), 0)
		 FROM scores`,
	).Scan(&stats.Games, &stats.HighScore, &stats.AvgScore, &totalMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.TotalTime = time.Duration(totalMS) * time.Millisecond

	var lastPlayed string
	err = s.db.QueryRow(`SELECT played_at FROM scores ORDER BY played_at DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		if parsed, err := time.Parse(timeLayout, lastPlayed); err == nil {
			stats.LastPlayed = parsed
		}
	}

	return stats, nil
}
