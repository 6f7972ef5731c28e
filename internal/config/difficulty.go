package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset parses a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialIntervalForPreset returns the starting tick interval in milliseconds,
// or 0 to keep the configured one.
func InitialIntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 150
	case DifficultyHard:
		return 90
	default:
		return 0
	}
}

// ApplyPreset modifies the speed section for a difficulty preset. Fixed keeps
// the starting interval for the whole game.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if ms := InitialIntervalForPreset(preset); ms > 0 {
		cfg.Speed.InitialMS = ms
		cfg.Speed.MinMS = min(cfg.Speed.MinMS, ms)
	}
	if preset == DifficultyFixed {
		cfg.Speed.Every = 0
	}
	cfg.Player.Difficulty = string(preset)
}
