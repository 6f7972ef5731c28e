package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const speakerLatency = 50 * time.Millisecond

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Start a game of snake. A short countdown runs before the snake moves.

Controls:
  Arrows/WASD   - Steer (mouse drags steer too)
  Space/Enter/P - Start, pause/resume, play again after game over
  M             - Toggle sound effects
  N             - Toggle music
  Tab           - Score list
  Ctrl+S        - Screenshot (text and PNG)
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Start slower (150ms per step), speeds up as you score
  normal - Start at 120ms per step, speeds up as you score
  hard   - Start faster (90ms per step), speeds up as you score
  fixed  - No speed-up, stays at the configured interval

Examples:
  snake play
  snake play --difficulty hard
  snake play --name ada --mute
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var out audio.Output
	if cfg.Audio.Enabled && !flagMute {
		spk, spkErr := audio.OpenSpeaker(speakerLatency)
		if spkErr != nil {
			logger.Warn("audio disabled", "err", spkErr)
		} else {
			out = spk
		}
	}

	logger.Info("starting game",
		"grid", fmt.Sprintf("%dx%d", cfg.Board.Cols, cfg.Board.Rows),
		"difficulty", cfg.Player.Difficulty,
		"player", storage.NormalizeName(cfg.Player.Name),
	)

	return tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			FPS:     cfg.Render.FPS,
			Seed:    flagSeed,
		},
		Store:  store,
		Audio:  audio.NewPlayer(out, cfg.AudioSettings()),
		Logger: logger,
	})
}
