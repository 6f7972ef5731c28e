package core

import (
	"strings"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a 2D character buffer for rendering game graphics.
// Games draw runes and colors into it; the platform turns it into terminal output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Bounds returns the full screen rectangle.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Resize changes the screen dimensions. Content is discarded; the next frame
// redraws everything anyway.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = max(width, 0)
	s.height = max(height, 0)
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// Set places a rune with the default color. Out-of-bounds coordinates are ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, r, ColorDefault)
}

// SetCell places a colored rune. Out-of-bounds coordinates are ignored.
func (s *Screen) SetCell(x, y int, r rune, c Color) {
	if !s.Bounds().Contains(x, y) {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, or a blank cell when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.Bounds().Contains(x, y) {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y), clipped at the edges.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally inside r at row y.
func (s *Screen) DrawTextCentered(r Rect, y int, text string, c Color) {
	x := r.X + (r.W-len([]rune(text)))/2
	s.DrawText(x, y, text, c)
}

// FillRect fills a rectangular area with the given rune.
func (s *Screen) FillRect(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetCell(x, y, fill, c)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	s.SetCell(r.X, r.Y, '┌', c)
	s.SetCell(r.Right()-1, r.Y, '┐', c)
	s.SetCell(r.X, r.Bottom()-1, '└', c)
	s.SetCell(r.Right()-1, r.Bottom()-1, '┘', c)

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetCell(x, r.Y, '─', c)
		s.SetCell(x, r.Bottom()-1, '─', c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetCell(r.X, y, '│', c)
		s.SetCell(r.Right()-1, y, '│', c)
	}
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	lines := make([]string, s.height)
	for y := range lines {
		lines[y] = s.Row(y)
	}
	return strings.Join(lines, "\n")
}

// Row returns the text of the specified row.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
