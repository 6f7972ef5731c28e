package render

import (
	"image/color"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// SegmentPad insets each snake square inside its cell.
const SegmentPad = 1

// Draw renders snap onto the surface with cell-pixel cells at dpr. It only
// reads the snapshot.
func Draw(s *Surface, snap snake.Snapshot, cell int, dpr float64, p Palette) {
	cols, rows := snap.Grid.Cols, snap.Grid.Rows
	w, h := cols*cell, rows*cell
	s.Fit(w, h, dpr)

	c := s.Canvas()
	cf := float64(cell)
	fw, fh := float64(w), float64(h)

	c.FillRect(0, 0, fw, fh, p.Background)

	for x := 0; x <= cols; x++ {
		lx := float64(x)*cf + 0.5
		c.StrokeLine(lx, 0, lx, fh, 1, p.Grid)
	}
	for y := 0; y <= rows; y++ {
		ly := float64(y)*cf + 0.5
		c.StrokeLine(0, ly, fw, ly, 1, p.Grid)
	}

	seg := func(at snake.Cell, col color.RGBA) {
		c.FillRect(
			float64(at.X)*cf+SegmentPad,
			float64(at.Y)*cf+SegmentPad,
			cf-SegmentPad,
			cf-SegmentPad,
			col,
		)
	}
	if head, ok := snap.Head(); ok {
		for _, at := range snap.Snake[:len(snap.Snake)-1] {
			seg(at, p.Snake)
		}
		seg(head, p.Head)
	}

	if snap.HasFood {
		r := float64(cell/2 - 4)
		if r > 0 {
			cx := float64(snap.Food.X)*cf + cf/2
			cy := float64(snap.Food.Y)*cf + cf/2
			c.FillCircle(cx, cy, r, p.Food)
		}
	}
}
