package render

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// CellCols is the number of terminal columns per board cell. Terminal glyphs
// are roughly twice as tall as they are wide.
const CellCols = 2

// BoardSize returns the terminal footprint of a grid, border included.
func BoardSize(g snake.Grid) (w, h int) {
	return g.Cols*CellCols + 2, g.Rows + 2
}

// DrawScreen projects snap onto dst with the board's top-left border corner at
// (x, y). Cells outside dst are clipped.
func DrawScreen(dst *core.Screen, snap snake.Snapshot, x, y int) {
	w, h := BoardSize(snap.Grid)
	frame := core.NewRect(x, y, w, h)
	dst.FillRect(frame, ' ', core.ColorBoard)
	dst.DrawBox(frame, core.ColorGrid)

	put := func(c snake.Cell, left, right rune, col core.Color) {
		sx := x + 1 + c.X*CellCols
		sy := y + 1 + c.Y
		dst.SetCell(sx, sy, left, col)
		dst.SetCell(sx+1, sy, right, col)
	}

	if snap.HasFood {
		put(snap.Food, '●', ' ', core.ColorFood)
	}
	head, ok := snap.Head()
	if !ok {
		return
	}
	for _, seg := range snap.Snake[:len(snap.Snake)-1] {
		put(seg, '▓', '▓', core.ColorSnake)
	}
	put(head, '█', '█', core.ColorSnakeHead)
}
