//go:build js && wasm

package main

import (
	"image/color"
	"math"
	"syscall/js"

	"github.com/vovakirdan/tui-snake/internal/render"
)

// canvas2D draws on an HTML canvas through its 2D context.
type canvas2D struct {
	el    js.Value
	ctx   js.Value
	scale float64
}

var _ render.Canvas = (*canvas2D)(nil)

func newCanvas2D(el js.Value) *canvas2D {
	return &canvas2D{el: el, ctx: el.Call("getContext", "2d"), scale: 1}
}

// Resize sets the backing store size. Resizing a canvas resets its
// transform, so the scale is applied again.
func (c *canvas2D) Resize(w, h int) {
	c.el.Set("width", w)
	c.el.Set("height", h)
	c.ctx.Call("setTransform", c.scale, 0, 0, c.scale, 0, 0)
}

func (c *canvas2D) SetScale(s float64) {
	c.scale = s
	c.ctx.Call("setTransform", s, 0, 0, s, 0, 0)
}

func (c *canvas2D) FillRect(x, y, w, h float64, col color.RGBA) {
	c.ctx.Set("fillStyle", render.Hex(col))
	c.ctx.Call("fillRect", x, y, w, h)
}

func (c *canvas2D) StrokeLine(x0, y0, x1, y1, width float64, col color.RGBA) {
	c.ctx.Set("strokeStyle", render.Hex(col))
	c.ctx.Set("lineWidth", width)
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", x0, y0)
	c.ctx.Call("lineTo", x1, y1)
	c.ctx.Call("stroke")
}

func (c *canvas2D) FillCircle(cx, cy, r float64, col color.RGBA) {
	c.ctx.Set("fillStyle", render.Hex(col))
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", cx, cy, r, 0, 2*math.Pi)
	c.ctx.Call("fill")
}
