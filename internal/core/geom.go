// Package core provides the small host-independent building blocks shared by the
// engine, the render sinks and the terminal platform. It has no third-party
// dependencies so game logic stays pure and testable.
package core

// Rect is an axis-aligned block of terminal cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is one past the last column.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is one past the last row.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CenteredIn places a w×h block in the middle of r, rounding toward the
// top-left corner. The result may stick out of r when it does not fit.
func (r Rect) CenteredIn(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Inset shrinks r by n cells on every side. Sizes never go negative.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}
