package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// Music is a looping track that can pause and later continue from the same
// offset.
type Music struct {
	out    Output
	src    beep.StreamSeeker
	volume float64

	mu        sync.Mutex
	ctrl      *beep.Ctrl
	playing   bool
	suspended bool
	resume    bool
}

// NewMusic loops src on out at volume.
func NewMusic(out Output, src beep.StreamSeeker, volume float64) *Music {
	return &Music{out: out, src: src, volume: volume}
}

// Play starts the track, or continues it if paused.
func (m *Music) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playing {
		return
	}
	m.playing = true

	if m.ctrl != nil {
		ctrl := m.ctrl
		m.out.Do(func() { ctrl.Paused = false })
		return
	}

	m.out.Do(func() { _ = m.src.Seek(0) })
	m.ctrl = &beep.Ctrl{Streamer: gain(beep.Loop(-1, m.src), m.volume)}
	m.out.Play(m.ctrl)
}

// Pause holds the track at its current position.
func (m *Music) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.playing || m.ctrl == nil {
		return
	}
	m.playing = false
	ctrl := m.ctrl
	m.out.Do(func() { ctrl.Paused = true })
}

// Resume continues a paused track. It does nothing for a stopped one.
func (m *Music) Resume() {
	m.mu.Lock()
	paused := m.ctrl != nil && !m.playing
	m.mu.Unlock()

	if paused {
		m.Play()
	}
}

// Stop ends the track and rewinds it.
func (m *Music) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.playing = false
	m.resume = false
	if m.ctrl == nil {
		return
	}
	ctrl := m.ctrl
	m.ctrl = nil
	m.out.Do(func() { ctrl.Streamer = nil })
}

// Suspend pauses for a hidden host, remembering whether the track was
// playing. Repeated calls keep the first answer.
func (m *Music) Suspend() {
	m.mu.Lock()
	if m.suspended {
		m.mu.Unlock()
		return
	}
	m.suspended = true
	m.resume = m.playing
	m.mu.Unlock()

	m.Pause()
}

// Restore undoes Suspend, resuming only if the track was playing before.
func (m *Music) Restore() {
	m.mu.Lock()
	if !m.suspended {
		m.mu.Unlock()
		return
	}
	m.suspended = false
	resume := m.resume
	m.resume = false
	m.mu.Unlock()

	if resume {
		m.Resume()
	}
}

// Playing reports whether the track is audible.
func (m *Music) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// position returns the offset into the track, in samples.
func (m *Music) position() int {
	var pos int
	m.out.Do(func() { pos = m.src.Position() })
	return pos
}
