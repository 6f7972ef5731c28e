package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/render"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, ok := decode(DefaultYAML())
	if !ok {
		t.Fatal("embedded default does not validate")
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded default = %+v, expected %+v", cfg, Default())
	}
}

func TestDefaultSpeedMatchesEngine(t *testing.T) {
	sp := Default().SpeedPolicy()
	if sp.Initial != 120*time.Millisecond || sp.Min != 60*time.Millisecond || sp.Step != 6*time.Millisecond || sp.Every != 4 {
		t.Errorf("SpeedPolicy() = %+v", sp)
	}
	if g := Default().Grid(); g.Cols != 22 || g.Rows != 22 {
		t.Errorf("Grid() = %+v, expected 22x22", g)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := writeFile(t, "board:\n  cols: 30\naudio:\n  bgm: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Board.Cols != 30 {
		t.Errorf("Board.Cols = %d, expected 30", cfg.Board.Cols)
	}
	if cfg.Board.Rows != 22 {
		t.Errorf("Board.Rows = %d, expected default 22", cfg.Board.Rows)
	}
	if !cfg.Audio.BGM || !cfg.Audio.SFX {
		t.Errorf("Audio = %+v, expected bgm and sfx on", cfg.Audio)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"malformed", func(t *testing.T) string { return writeFile(t, "board: [1, 2\n") }},
		{"invalid values", func(t *testing.T) string { return writeFile(t, "speed:\n  min_ms: 500\n") }},
		{"bad color", func(t *testing.T) string { return writeFile(t, "render:\n  food: red\n") }},
		{"bad difficulty", func(t *testing.T) string { return writeFile(t, "player:\n  difficulty: nightmare\n") }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.path(t)); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Player.Name = "ADA"
	cfg.Render.FPS = 30

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("Load() = %+v, expected %+v", loaded, cfg)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		initialMS int
		minMS     int
		every     int
	}{
		{DifficultyEasy, 150, 60, 4},
		{DifficultyNormal, 120, 60, 4},
		{DifficultyHard, 90, 60, 4},
		{DifficultyFixed, 120, 60, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := Default()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Speed.InitialMS != tc.initialMS || cfg.Speed.MinMS != tc.minMS || cfg.Speed.Every != tc.every {
				t.Errorf("Speed = %+v, expected initial %d min %d every %d", cfg.Speed, tc.initialMS, tc.minMS, tc.every)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"fixed", DifficultyFixed, false},
		{"EASY", "", true},
		{"insane", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestPalette(t *testing.T) {
	p, err := Default().Palette()
	if err != nil {
		t.Fatalf("Palette() error = %v", err)
	}
	if p != render.DefaultPalette() {
		t.Errorf("Palette() = %+v, expected %+v", p, render.DefaultPalette())
	}
}

func TestAudioSettings(t *testing.T) {
	cfg := Default()
	cfg.Audio.SFX = false
	cfg.Audio.BGM = true
	s := cfg.AudioSettings()
	if s.SFX || !s.BGM || s.Volume != 0.8 {
		t.Errorf("AudioSettings() = %+v", s)
	}
}
