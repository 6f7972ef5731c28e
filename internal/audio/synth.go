package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every generated stream uses.
const SampleRate = beep.SampleRate(44100)

// EatGain is the one-shot gain applied before the master volume.
const EatGain = 0.6

// tone is a sine note with a linear attack and release.
type tone struct {
	freq    float64
	phase   float64
	pos     int
	total   int
	attack  int
	release int
	rate    beep.SampleRate
}

func newTone(freq float64, d, attack, release time.Duration, rate beep.SampleRate) *tone {
	return &tone{
		freq:    freq,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
		rate:    rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		env := 1.0
		if t.attack > 0 && t.pos < t.attack {
			env = float64(t.pos) / float64(t.attack)
		}
		if left := t.total - t.pos; t.release > 0 && left < t.release {
			env = math.Min(env, float64(left)/float64(t.release))
		}

		v := env * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// gain wraps s in a volume effect. Linear gains at or below zero are silent.
func gain(s beep.Streamer, linear float64) beep.Streamer {
	if linear <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(linear)}
}

// EatSound is a short rising two-note chirp scaled by volume.
func EatSound(volume float64) beep.Streamer {
	lo := newTone(660, 45*time.Millisecond, 3*time.Millisecond, 15*time.Millisecond, SampleRate)
	hi := newTone(990, 70*time.Millisecond, 3*time.Millisecond, 40*time.Millisecond, SampleRate)
	return gain(beep.Seq(lo, hi), EatGain*volume)
}

// melody is the background loop: a pentatonic walk in A minor.
var melody = []float64{220, 261.63, 293.66, 329.63, 392, 329.63, 293.66, 261.63}

// Theme renders the background melody into a seekable buffer.
func Theme() beep.StreamSeeker {
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)

	notes := make([]beep.Streamer, 0, len(melody))
	for _, f := range melody {
		notes = append(notes, gain(newTone(f, 220*time.Millisecond, 10*time.Millisecond, 80*time.Millisecond, SampleRate), 0.25))
	}
	buf.Append(beep.Seq(notes...))
	return buf.Streamer(0, buf.Len())
}
