// Package config provides YAML-based configuration loading for the snake
// game: board size, speed policy, input tuning, audio, player and rendering.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
)

// Config contains all configuration for the game.
type Config struct {
	Board  BoardConfig  `yaml:"board"`
	Speed  SpeedConfig  `yaml:"speed"`
	Input  InputConfig  `yaml:"input"`
	Audio  AudioConfig  `yaml:"audio"`
	Player PlayerConfig `yaml:"player"`
	Render RenderConfig `yaml:"render"`
}

// BoardConfig defines the playfield.
type BoardConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// SpeedConfig defines the tick interval policy.
type SpeedConfig struct {
	InitialMS int `yaml:"initial_ms"`
	MinMS     int `yaml:"min_ms"`
	StepMS    int `yaml:"step_ms"`
	Every     int `yaml:"every"` // speed up whenever the score is a multiple; 0 disables
}

// InputConfig tunes pointer gestures.
type InputConfig struct {
	SwipeThreshold float64 `yaml:"swipe_threshold"`
	CellPxX        float64 `yaml:"cell_px_x"` // pixels per terminal column for mouse drags
	CellPxY        float64 `yaml:"cell_px_y"` // pixels per terminal row for mouse drags
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	SFX     bool    `yaml:"sfx"`
	BGM     bool    `yaml:"bgm"`
	Volume  float64 `yaml:"volume"`
}

// PlayerConfig defines per-player defaults.
type PlayerConfig struct {
	Name       string `yaml:"name"`
	Countdown  int    `yaml:"countdown"` // seconds before auto-start, 0 waits for a key
	Difficulty string `yaml:"difficulty"`
}

// RenderConfig defines frame rate and colors.
type RenderConfig struct {
	FPS        int     `yaml:"fps"`
	CellPx     int     `yaml:"cell_px"`
	DPR        float64 `yaml:"dpr"`
	Background string  `yaml:"background"`
	Grid       string  `yaml:"grid"`
	Snake      string  `yaml:"snake"`
	Head       string  `yaml:"head"`
	Food       string  `yaml:"food"`
}

// Grid returns the board as a snake grid.
func (c Config) Grid() snake.Grid {
	return snake.Grid{Cols: c.Board.Cols, Rows: c.Board.Rows}
}

// SpeedPolicy converts the speed section.
func (c Config) SpeedPolicy() snake.Speed {
	return snake.Speed{
		Initial: time.Duration(c.Speed.InitialMS) * time.Millisecond,
		Min:     time.Duration(c.Speed.MinMS) * time.Millisecond,
		Step:    time.Duration(c.Speed.StepMS) * time.Millisecond,
		Every:   c.Speed.Every,
	}
}

// AudioSettings converts the audio section.
func (c Config) AudioSettings() audio.Settings {
	return audio.Settings{SFX: c.Audio.SFX, BGM: c.Audio.BGM, Volume: c.Audio.Volume}
}

// Palette parses the render colors.
func (c Config) Palette() (render.Palette, error) {
	var p render.Palette
	fields := []struct {
		name string
		src  string
		dst  *color.RGBA
	}{
		{"background", c.Render.Background, &p.Background},
		{"grid", c.Render.Grid, &p.Grid},
		{"snake", c.Render.Snake, &p.Snake},
		{"head", c.Render.Head, &p.Head},
		{"food", c.Render.Food, &p.Food},
	}
	for _, f := range fields {
		col, err := render.ParseHex(f.src)
		if err != nil {
			return p, fmt.Errorf("config: render.%s: %w", f.name, err)
		}
		*f.dst = col
	}
	return p, nil
}

// Validate checks ranges the game depends on.
func (c Config) Validate() error {
	var errs []error
	if c.Board.Cols < 4 || c.Board.Rows < 4 {
		errs = append(errs, fmt.Errorf("board must be at least 4x4, got %dx%d", c.Board.Cols, c.Board.Rows))
	}
	if c.Speed.InitialMS <= 0 || c.Speed.MinMS <= 0 {
		errs = append(errs, errors.New("speed intervals must be positive"))
	}
	if c.Speed.MinMS > c.Speed.InitialMS {
		errs = append(errs, fmt.Errorf("speed.min_ms %d exceeds initial_ms %d", c.Speed.MinMS, c.Speed.InitialMS))
	}
	if c.Speed.StepMS < 0 || c.Speed.Every < 0 {
		errs = append(errs, errors.New("speed step and every must not be negative"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %v outside [0,1]", c.Audio.Volume))
	}
	if c.Player.Countdown < 0 {
		errs = append(errs, errors.New("player.countdown must not be negative"))
	}
	if c.Render.FPS <= 0 {
		errs = append(errs, errors.New("render.fps must be positive"))
	}
	if _, err := ParsePreset(c.Player.Difficulty); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
