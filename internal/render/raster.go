package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Raster is an in-memory Canvas backed by an RGBA image.
type Raster struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	scale float64
}

// NewRaster returns an empty raster. Call Resize (or Fit a Surface) first.
func NewRaster() *Raster {
	return &Raster{
		img:   image.NewRGBA(image.Rectangle{}),
		z:     vector.NewRasterizer(0, 0),
		scale: 1,
	}
}

func (r *Raster) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.z = vector.NewRasterizer(w, h)
}

func (r *Raster) SetScale(s float64) {
	if s <= 0 {
		s = 1
	}
	r.scale = s
}

func (r *Raster) FillRect(x, y, w, h float64, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	r.begin()
	r.moveTo(x, y)
	r.lineTo(x+w, y)
	r.lineTo(x+w, y+h)
	r.lineTo(x, y+h)
	r.fill(c)
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	r.begin()
	r.moveTo(x0+nx, y0+ny)
	r.lineTo(x1+nx, y1+ny)
	r.lineTo(x1-nx, y1-ny)
	r.lineTo(x0-nx, y0-ny)
	r.fill(c)
}

func (r *Raster) FillCircle(cx, cy, rad float64, c color.RGBA) {
	if rad <= 0 {
		return
	}
	k := rad * kappa

	r.begin()
	r.moveTo(cx+rad, cy)
	r.cubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	r.cubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	r.cubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	r.cubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	r.fill(c)
}

// EncodePNG writes the backing image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

func (r *Raster) begin() {
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
}

func (r *Raster) moveTo(x, y float64) {
	r.z.MoveTo(float32(x*r.scale), float32(y*r.scale))
}

func (r *Raster) lineTo(x, y float64) {
	r.z.LineTo(float32(x*r.scale), float32(y*r.scale))
}

func (r *Raster) cubeTo(bx, by, cx, cy, dx, dy float64) {
	s := r.scale
	r.z.CubeTo(
		float32(bx*s), float32(by*s),
		float32(cx*s), float32(cy*s),
		float32(dx*s), float32(dy*s),
	)
}

func (r *Raster) fill(c color.RGBA) {
	b := r.img.Bounds()
	if b.Empty() {
		return
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

// WritePNG renders snap into a fresh raster and encodes it to w.
func WritePNG(w io.Writer, snap snake.Snapshot, cell int, dpr float64, p Palette) error {
	r := NewRaster()
	Draw(NewSurface(r), snap, cell, dpr, p)
	return r.EncodePNG(w)
}
