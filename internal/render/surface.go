package render

import "math"

// Surface tracks the logical and backing size of a Canvas and only resizes
// the backing store when the device pixel size actually changes.
type Surface struct {
	canvas Canvas

	width, height int
	backW, backH  int
	scale         float64
}

// NewSurface wraps c. The first Fit always allocates.
func NewSurface(c Canvas) *Surface {
	return &Surface{canvas: c, backW: -1, backH: -1}
}

// Fit sizes the surface for a w x h logical board at dpr. It reports whether
// the backing store was reallocated.
func (s *Surface) Fit(w, h int, dpr float64) bool {
	dpr = ClampDPR(dpr)
	bw := int(math.Floor(float64(w) * dpr))
	bh := int(math.Floor(float64(h) * dpr))

	s.width, s.height = w, h
	if s.scale != dpr {
		s.scale = dpr
		s.canvas.SetScale(dpr)
	}
	if bw == s.backW && bh == s.backH {
		return false
	}
	s.backW, s.backH = bw, bh
	s.canvas.Resize(bw, bh)
	return true
}

// Canvas returns the wrapped canvas.
func (s *Surface) Canvas() Canvas { return s.canvas }

// Size returns the logical size.
func (s *Surface) Size() (int, int) { return s.width, s.height }
