package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the built-in configuration. It matches defaults/snake.yaml.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Cols: 22,
			Rows: 22,
		},
		Speed: SpeedConfig{
			InitialMS: 120,
			MinMS:     60,
			StepMS:    6,
			Every:     4,
		},
		Input: InputConfig{
			SwipeThreshold: 18,
			CellPxX:        8,
			CellPxY:        16,
		},
		Audio: AudioConfig{
			Enabled: true,
			SFX:     true,
			BGM:     false,
			Volume:  0.8,
		},
		Player: PlayerConfig{
			Name:       "PLAYER",
			Countdown:  3,
			Difficulty: string(DifficultyNormal),
		},
		Render: RenderConfig{
			FPS:        60,
			CellPx:     24,
			DPR:        1,
			Background: "#02017F",
			Grid:       "#02017F",
			Snake:      "#E9F711",
			Head:       "#E9F711",
			Food:       "#E9F711",
		},
	}
}

// DefaultYAML returns the embedded default file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
