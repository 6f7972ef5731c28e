package render

import (
	"math"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Layout sizing constants.
const (
	MinCellPx  = 12
	MaxDPR     = 2.0
	ViewportFr = 0.9
)

// Layout is the logical size of the board for a viewport.
type Layout struct {
	Cell   int
	Width  int
	Height int
}

// FitLayout sizes cells so the board takes 90% of the smaller viewport side,
// never going below MinCellPx per cell.
func FitLayout(viewW, viewH int, g snake.Grid) Layout {
	side := int(math.Floor(float64(min(viewW, viewH)) * ViewportFr))
	cols := max(g.Cols, 1)
	cell := max(MinCellPx, side/cols)
	return Layout{Cell: cell, Width: g.Cols * cell, Height: g.Rows * cell}
}

// ClampDPR limits a device pixel ratio to (0, MaxDPR]. Non-positive values
// mean 1.
func ClampDPR(dpr float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) {
		return 1
	}
	return math.Min(dpr, MaxDPR)
}
