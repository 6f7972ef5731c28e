package storage

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Name limits for the score list.
const (
	MaxNameLen  = 12
	DefaultName = "PLAYER"
)

// NormalizeName upper-cases and trims name and cuts it to MaxNameLen runes.
// An empty result becomes DefaultName.
func NormalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if r := []rune(name); len(r) > MaxNameLen {
		name = strings.TrimSpace(string(r[:MaxNameLen]))
	}
	if name == "" {
		return DefaultName
	}
	return name
}

// NewRecord builds a score record for a finished game with a fresh run id.
func NewRecord(name string, r snake.Result) ScoreRecord {
	when := r.When
	if when.IsZero() {
		when = time.Now()
	}
	return ScoreRecord{
		RunID:    uuid.NewString(),
		Name:     NormalizeName(name),
		Score:    r.Score,
		Duration: r.Duration.Truncate(time.Millisecond),
		When:     when,
	}
}
