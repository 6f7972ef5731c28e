package storage

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// BestCell adapts a Store to the engine's best-score cell. The value is read
// once when the cell is created; writes go straight through and failures are
// logged, since a lost best score must not stop the game.
type BestCell struct {
	store  *Store
	logger *log.Logger

	mu   sync.Mutex
	best int
}

var _ snake.BestStore = (*BestCell)(nil)

// NewBestCell loads the saved best score from store.
func NewBestCell(store *Store, logger *log.Logger) *BestCell {
	c := &BestCell{store: store, logger: logger}
	best, err := store.LoadBest()
	if err != nil {
		logger.Warn("cannot load best score", "err", err)
	}
	c.best = best
	return c
}

// Best returns the best score seen so far.
func (c *BestCell) Best() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.best
}

// SetBest records score if it is a new best.
func (c *BestCell) SetBest(score int) {
	c.mu.Lock()
	if score <= c.best {
		c.mu.Unlock()
		return
	}
	c.best = score
	c.mu.Unlock()

	if err := c.store.SaveBest(score); err != nil {
		c.logger.Error("cannot save best score", "score", score, "err", err)
		return
	}
	c.logger.Info("new best score", "score", score)
}
