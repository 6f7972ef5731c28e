package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// recordOutput keeps every stream it is asked to play.
type recordOutput struct {
	streams []beep.Streamer
}

func (o *recordOutput) Play(s beep.Streamer) { o.streams = append(o.streams, s) }
func (o *recordOutput) Do(f func())          { f() }

// pull reads n samples from s and returns the peak amplitude.
func pull(t *testing.T, s beep.Streamer, n int) float64 {
	t.Helper()
	buf := make([][2]float64, n)
	got, _ := s.Stream(buf)
	peak := 0.0
	for _, smp := range buf[:got] {
		peak = math.Max(peak, math.Abs(smp[0]))
	}
	return peak
}

func TestPlayEatRespectsSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		expected int
	}{
		{"enabled", Settings{SFX: true, Volume: 1}, 1},
		{"muted", Settings{SFX: false, Volume: 1}, 0},
		{"zero volume", Settings{SFX: true, Volume: 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := &recordOutput{}
			p := NewPlayer(out, tc.settings)
			p.PlayEat()
			if len(out.streams) != tc.expected {
				t.Errorf("streams = %d, expected %d", len(out.streams), tc.expected)
			}
		})
	}
}

func allOn() Settings {
	return Settings{SFX: true, BGM: true, Volume: 1}
}

func TestToggleSFXIsReadOnNextPlay(t *testing.T) {
	out := &recordOutput{}
	p := NewPlayer(out, allOn())

	if p.ToggleSFX() {
		t.Fatal("ToggleSFX() = true, expected false")
	}
	p.PlayEat()
	p.ToggleSFX()
	p.PlayEat()

	if len(out.streams) != 1 {
		t.Errorf("streams = %d, expected 1", len(out.streams))
	}
}

func TestEatSoundLengthAndGain(t *testing.T) {
	s := EatSound(1)
	buf := make([][2]float64, 512)

	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			break
		}
	}

	expected := SampleRate.N(45*time.Millisecond) + SampleRate.N(70*time.Millisecond)
	if total != expected {
		t.Errorf("samples = %d, expected %d", total, expected)
	}
	if peak < 0.3 || peak > EatGain+1e-9 {
		t.Errorf("peak = %v, expected within (0.3, %v]", peak, EatGain)
	}
}

func TestMusicPauseKeepsPosition(t *testing.T) {
	out := &recordOutput{}
	m := NewMusic(out, Theme(), 1)

	m.Play()
	if len(out.streams) != 1 {
		t.Fatalf("streams = %d, expected 1", len(out.streams))
	}
	s := out.streams[0]

	if peak := pull(t, s, 1000); peak == 0 {
		t.Error("music is silent while playing")
	}
	if m.position() != 1000 {
		t.Fatalf("position() = %d, expected 1000", m.position())
	}

	m.Pause()
	if peak := pull(t, s, 1000); peak != 0 {
		t.Errorf("peak while paused = %v, expected 0", peak)
	}
	if m.position() != 1000 {
		t.Errorf("position() after pause = %d, expected 1000", m.position())
	}

	m.Resume()
	pull(t, s, 500)
	if m.position() != 1500 {
		t.Errorf("position() after resume = %d, expected 1500", m.position())
	}
	if len(out.streams) != 1 {
		t.Errorf("resume started a new stream")
	}
}

func TestMusicStopRewinds(t *testing.T) {
	out := &recordOutput{}
	m := NewMusic(out, Theme(), 1)
	m.Play()
	pull(t, out.streams[0], 2000)

	m.Stop()
	if n, ok := out.streams[0].Stream(make([][2]float64, 10)); n != 0 || ok {
		t.Errorf("stopped stream returned %d, %v, expected drained", n, ok)
	}

	m.Resume()
	if m.Playing() {
		t.Error("Resume should not restart a stopped track")
	}

	m.Play()
	if len(out.streams) != 2 {
		t.Fatalf("streams = %d, expected a fresh stream", len(out.streams))
	}
	if m.position() != 0 {
		t.Errorf("position() = %d, expected rewound to 0", m.position())
	}
}

func TestMusicSuspendRestore(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(m *Music)
		suspends int
		expected bool
	}{
		{"playing resumes", func(m *Music) { m.Play() }, 1, true},
		{"repeated suspend resumes", func(m *Music) { m.Play() }, 2, true},
		{"paused stays paused", func(m *Music) {
			m.Play()
			m.Pause()
		}, 1, false},
		{"never started stays silent", func(m *Music) {}, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMusic(&recordOutput{}, Theme(), 1)
			tc.setup(m)

			for range tc.suspends {
				m.Suspend()
			}
			if m.Playing() {
				t.Error("Playing() = true while suspended")
			}

			m.Restore()
			if m.Playing() != tc.expected {
				t.Errorf("Playing() = %v, expected %v", m.Playing(), tc.expected)
			}
		})
	}
}

func TestPlayerBGMToggle(t *testing.T) {
	out := &recordOutput{}
	p := NewPlayer(out, allOn())

	p.StartMusic()
	if !p.Music().Playing() {
		t.Fatal("StartMusic did not start the track")
	}

	if p.ToggleBGM() {
		t.Error("ToggleBGM() = true, expected false")
	}
	if p.Music().Playing() {
		t.Error("music still playing after disabling BGM")
	}

	if !p.ToggleBGM() {
		t.Error("ToggleBGM() = false, expected true")
	}
	if !p.Music().Playing() || len(out.streams) != 1 {
		t.Errorf("Playing() = %v, streams = %d, expected resumed single stream", p.Music().Playing(), len(out.streams))
	}

	p.Close()
	if p.Music().Playing() {
		t.Error("Close did not stop the music")
	}
}

func TestStartMusicDisabled(t *testing.T) {
	out := &recordOutput{}
	p := NewPlayer(out, Settings{SFX: true, BGM: false, Volume: 0.5})

	p.StartMusic()

	if len(out.streams) != 0 {
		t.Errorf("streams = %d, expected 0 with BGM off", len(out.streams))
	}
}

func TestNewPlayerClampsVolume(t *testing.T) {
	p := NewPlayer(nil, Settings{SFX: true, Volume: 4})
	if p.Settings().Volume != 1 {
		t.Errorf("Volume = %v, expected 1", p.Settings().Volume)
	}
	p.PlayEat()
}
