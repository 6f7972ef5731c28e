// Package audio plays the game's sound effects and background music with beep.
//
// Everything goes through an Output, so the game runs the same with a real
// speaker, with audio disabled, or under test.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is where streams end up.
type Output interface {
	// Play starts s mixed with whatever is already playing.
	Play(s beep.Streamer)
	// Do runs f while the output is not pulling samples, so f may mutate
	// streamers that are already playing.
	Do(f func())
}

// Speaker plays through the system audio device.
type Speaker struct {
	mixer *beep.Mixer
}

var speakerOnce struct {
	sync.Mutex
	sp *Speaker
}

// OpenSpeaker initialises the audio device with the given buffer latency.
// Later calls return the same speaker.
func OpenSpeaker(latency time.Duration) (*Speaker, error) {
	speakerOnce.Lock()
	defer speakerOnce.Unlock()

	if speakerOnce.sp != nil {
		return speakerOnce.sp, nil
	}
	if latency <= 0 {
		latency = 50 * time.Millisecond
	}
	if err := speaker.Init(SampleRate, SampleRate.N(latency)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	sp := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(sp.mixer)
	speakerOnce.sp = sp
	return sp, nil
}

func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Speaker) Do(f func()) {
	speaker.Lock()
	defer speaker.Unlock()
	f()
}

// Clear drops every playing stream.
func (s *Speaker) Clear() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

// Discard is an Output that plays nothing.
type Discard struct{}

func (Discard) Play(beep.Streamer) {}

func (Discard) Do(f func()) { f() }
