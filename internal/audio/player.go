package audio

import "sync"

// Settings controls what is audible. It is read on every play call.
type Settings struct {
	SFX    bool
	BGM    bool
	Volume float64 // 0..1
}

// Player owns the sound settings, the one-shot effects and the music track.
type Player struct {
	out Output

	mu       sync.Mutex
	settings Settings
	music    *Music
}

// NewPlayer creates a player on out. A nil out discards everything.
func NewPlayer(out Output, s Settings) *Player {
	if out == nil {
		out = Discard{}
	}
	s.Volume = clamp01(s.Volume)
	return &Player{
		out:      out,
		settings: s,
		music:    NewMusic(out, Theme(), s.Volume),
	}
}

// PlayEat fires the eat chirp unless effects are muted.
func (p *Player) PlayEat() {
	s := p.Settings()
	if !s.SFX || s.Volume <= 0 {
		return
	}
	p.out.Play(EatSound(s.Volume))
}

// Settings returns the current settings.
func (p *Player) Settings() Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// ToggleSFX flips the effects flag and returns the new value.
func (p *Player) ToggleSFX() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings.SFX = !p.settings.SFX
	return p.settings.SFX
}

// SetBGM enables or disables the music. Disabling pauses the track at its
// current position; enabling resumes it from there.
func (p *Player) SetBGM(on bool) {
	p.mu.Lock()
	p.settings.BGM = on
	p.mu.Unlock()

	if on {
		p.music.Play()
	} else {
		p.music.Pause()
	}
}

// ToggleBGM flips the music flag and returns the new value.
func (p *Player) ToggleBGM() bool {
	on := !p.Settings().BGM
	p.SetBGM(on)
	return on
}

// StartMusic starts the track if music is enabled.
func (p *Player) StartMusic() {
	if p.Settings().BGM {
		p.music.Play()
	}
}

// Music returns the background track.
func (p *Player) Music() *Music {
	return p.music
}

// Close stops the music.
func (p *Player) Close() {
	p.music.Stop()
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
