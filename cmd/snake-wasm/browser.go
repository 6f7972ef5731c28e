//go:build js && wasm

package main

import (
	"strconv"
	"syscall/js"
	"time"
)

const bestKey = "snake.best"

// localBest keeps the best score in window.localStorage.
type localBest struct {
	storage js.Value
	best    int
}

func newLocalBest() *localBest {
	b := &localBest{storage: js.Global().Get("localStorage")}
	if b.storage.Truthy() {
		if v := b.storage.Call("getItem", bestKey); v.Type() == js.TypeString {
			b.best, _ = strconv.Atoi(v.String())
		}
	}
	return b
}

func (b *localBest) Best() int { return b.best }

func (b *localBest) SetBest(score int) {
	if score <= b.best {
		return
	}
	b.best = score
	if b.storage.Truthy() {
		b.storage.Call("setItem", bestKey, strconv.Itoa(score))
	}
}

// webSound plays a short two-tone chirp with the Web Audio API.
type webSound struct {
	ctx  js.Value
	gain float64
	on   bool
}

func newWebSound(gain float64, on bool) *webSound {
	s := &webSound{gain: gain, on: on}
	if ac := js.Global().Get("AudioContext"); ac.Truthy() {
		s.ctx = ac.New()
	}
	return s
}

func (s *webSound) PlayEat() {
	if !s.on || !s.ctx.Truthy() {
		return
	}
	if s.ctx.Get("state").String() == "suspended" {
		s.ctx.Call("resume")
	}
	now := s.ctx.Get("currentTime").Float()
	s.tone(660, now, 45*time.Millisecond)
	s.tone(990, now+0.045, 70*time.Millisecond)
}

func (s *webSound) tone(freq, at float64, d time.Duration) {
	osc := s.ctx.Call("createOscillator")
	g := s.ctx.Call("createGain")
	osc.Set("type", "square")
	osc.Get("frequency").Set("value", freq)
	g.Get("gain").Call("setValueAtTime", s.gain, at)
	g.Get("gain").Call("exponentialRampToValueAtTime", 0.001, at+d.Seconds())
	osc.Call("connect", g)
	g.Call("connect", s.ctx.Get("destination"))
	osc.Call("start", at)
	osc.Call("stop", at+d.Seconds())
}
