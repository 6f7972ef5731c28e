// Package render turns snake snapshots into draw calls.
//
// Draw targets the small Canvas interface, which the raster sink in this
// package and the browser host both implement. DrawScreen projects the same
// snapshot onto a terminal cell buffer.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Canvas is a 2D drawing target. Coordinates are logical pixels; the canvas
// multiplies them by the scale set with SetScale.
type Canvas interface {
	// Resize reallocates the backing store to w x h device pixels.
	Resize(w, h int)
	SetScale(s float64)
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
}

// Palette holds the board colors.
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA
	Snake      color.RGBA
	Head       color.RGBA
	Food       color.RGBA
}

// DefaultPalette is navy with yellow pieces. Grid lines share the background
// color, so the lattice is invisible unless a theme overrides it.
func DefaultPalette() Palette {
	navy := color.RGBA{R: 0x02, G: 0x01, B: 0x7F, A: 0xFF}
	yellow := color.RGBA{R: 0xE9, G: 0xF7, B: 0x11, A: 0xFF}
	return Palette{
		Background: navy,
		Grid:       navy,
		Snake:      yellow,
		Head:       yellow,
		Food:       yellow,
	}
}

// ParseHex parses "#RRGGBB" or "RRGGBB" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("render: invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("render: invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// Hex formats c as "#RRGGBB".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
