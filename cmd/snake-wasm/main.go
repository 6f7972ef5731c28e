//go:build js && wasm

// snake-wasm runs the game in a browser canvas. Build with
//
//	GOOS=js GOARCH=wasm go build -o snake.wasm ./cmd/snake-wasm
//
// and load it with wasm_exec.js. Display frames come from
// requestAnimationFrame; keys, swipes, resizes and tab visibility are queued
// as driver events so every session call happens on one goroutine.
package main

import (
	"context"
	"fmt"
	"os"
	"syscall/js"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
)

var doc = js.Global().Get("document")

type host struct {
	cfg     config.Config
	palette render.Palette
	logger  *log.Logger

	canvas  js.Value
	hud     js.Value
	surface *render.Surface
	layout  render.Layout
	dpr     float64

	frames    chan time.Duration
	events    chan snake.Event
	swipe     *snake.Swipe
	countdown int
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "snake"})

	cfg := config.Default()
	palette, err := cfg.Palette()
	if err != nil {
		palette = render.DefaultPalette()
	}

	h := &host{
		cfg:       cfg,
		palette:   palette,
		logger:    logger,
		frames:    make(chan time.Duration, 1),
		events:    make(chan snake.Event, 32),
		swipe:     snake.NewSwipe(cfg.Input.SwipeThreshold),
		countdown: cfg.Player.Countdown,
	}
	h.initDOM()

	session := snake.New(snake.Options{
		Grid:  cfg.Grid(),
		Speed: cfg.SpeedPolicy(),
		Seed:  time.Now().UnixNano(),
		Sound: newWebSound(0.6*cfg.Audio.Volume, cfg.Audio.Enabled && cfg.Audio.SFX),
		Best:  newLocalBest(),
		OnGameOver: func(r snake.Result) {
			logger.Info("game over", "score", r.Score, "duration", r.Duration.Round(time.Millisecond))
		},
	})

	driver := snake.NewDriver(session)
	driver.OnRender = h.draw

	h.relayout()
	h.listen()
	h.requestFrame()
	h.startCountdown()

	if err := driver.Run(context.Background(), h.frames, h.events); err != nil {
		logger.Error("driver stopped", "err", err)
	}
}

func (h *host) initDOM() {
	body := doc.Get("body")
	body.Get("style").Set("margin", "0")
	body.Get("style").Set("background", render.Hex(h.palette.Background))
	body.Get("style").Set("touchAction", "none")

	h.hud = doc.Call("createElement", "div")
	h.hud.Get("style").Set("color", render.Hex(h.palette.Snake))
	h.hud.Get("style").Set("fontFamily", "monospace")
	h.hud.Get("style").Set("textAlign", "center")
	h.hud.Get("style").Set("padding", "4px")
	body.Call("appendChild", h.hud)

	h.canvas = doc.Call("createElement", "canvas")
	h.canvas.Get("style").Set("display", "block")
	h.canvas.Get("style").Set("margin", "0 auto")
	body.Call("appendChild", h.canvas)

	h.surface = render.NewSurface(newCanvas2D(h.canvas))
}

// relayout sizes the board for the current viewport and pixel ratio.
func (h *host) relayout() {
	win := js.Global()
	h.dpr = render.ClampDPR(win.Get("devicePixelRatio").Float())
	h.layout = render.FitLayout(win.Get("innerWidth").Int(), win.Get("innerHeight").Int(), h.cfg.Grid())

	style := h.canvas.Get("style")
	style.Set("width", fmt.Sprintf("%dpx", h.layout.Width))
	style.Set("height", fmt.Sprintf("%dpx", h.layout.Height))
}

func (h *host) draw(snap snake.Snapshot) {
	render.Draw(h.surface, snap, h.layout.Cell, h.dpr, h.palette)

	status := ""
	switch snap.Status {
	case snake.StatusNotStarted:
		if h.countdown > 0 {
			status = fmt.Sprintf(" | %d", h.countdown)
		} else {
			status = " | press space"
		}
	case snake.StatusPaused:
		status = " | paused"
	case snake.StatusGameOver:
		status = " | game over, space to play again"
	}
	h.hud.Set("textContent", fmt.Sprintf("SCORE %d | BEST %d%s", snap.Score, snap.Best, status))
}

func (h *host) requestFrame() {
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		ts := time.Duration(args[0].Float() * float64(time.Millisecond))
		select {
		case h.frames <- ts:
		default:
		}
		js.Global().Call("requestAnimationFrame", cb)
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}

func (h *host) post(ev snake.Event) {
	select {
	case h.events <- ev:
	default:
		h.logger.Warn("event dropped")
	}
}

// startCountdown starts the session after the configured number of seconds
// unless a key starts it first.
func (h *host) startCountdown() {
	if h.countdown <= 0 {
		return
	}
	var tick func()
	tick = func() {
		h.post(func(d *snake.Driver) {
			s := d.Session()
			if h.countdown <= 0 || s.Status() != snake.StatusNotStarted {
				h.countdown = 0
				return
			}
			h.countdown--
			if h.countdown == 0 {
				s.Start()
				return
			}
			time.AfterFunc(time.Second, tick)
		})
	}
	time.AfterFunc(time.Second, tick)
}

func (h *host) listen() {
	doc.Call("addEventListener", "keydown", js.FuncOf(func(_ js.Value, args []js.Value) any {
		e := args[0]
		action := snake.KeyAction(e.Get("key").String())
		if action == core.ActionNone {
			return nil
		}
		e.Call("preventDefault")
		h.post(func(d *snake.Driver) {
			if snake.Apply(d.Session(), action) && action == core.ActionToggle {
				h.countdown = 0
			}
		})
		return nil
	}))

	point := func(e js.Value) (float64, float64) {
		t := e.Get("touches").Index(0)
		return t.Get("clientX").Float(), t.Get("clientY").Float()
	}
	h.canvas.Call("addEventListener", "touchstart", js.FuncOf(func(_ js.Value, args []js.Value) any {
		x, y := point(args[0])
		h.post(func(*snake.Driver) { h.swipe.Begin(x, y) })
		return nil
	}))
	h.canvas.Call("addEventListener", "touchmove", js.FuncOf(func(_ js.Value, args []js.Value) any {
		args[0].Call("preventDefault")
		x, y := point(args[0])
		h.post(func(d *snake.Driver) {
			if dir, ok := h.swipe.Move(x, y); ok {
				d.Session().SetDirection(dir)
			}
		})
		return nil
	}))
	h.canvas.Call("addEventListener", "touchend", js.FuncOf(func(_ js.Value, _ []js.Value) any {
		h.post(func(*snake.Driver) { h.swipe.End() })
		return nil
	}))

	doc.Call("addEventListener", "visibilitychange", js.FuncOf(func(_ js.Value, _ []js.Value) any {
		visible := !doc.Get("hidden").Bool()
		h.post(func(d *snake.Driver) { d.OnVisibilityChange(visible) })
		return nil
	}))

	js.Global().Call("addEventListener", "resize", js.FuncOf(func(_ js.Value, _ []js.Value) any {
		h.post(func(*snake.Driver) { h.relayout() })
		return nil
	}))
}
