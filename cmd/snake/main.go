// snake is a terminal snake game with a persistent score list.
//
// Usage:
//
//	snake                    - Play (same as snake play)
//	snake play               - Play in this terminal
//	snake serve              - Start SSH server for remote play
//	snake scores             - Show the score list
//	snake best               - Print the best score
//	snake export <file>      - Write the score list as Parquet
//	snake snapshot <file>    - Render a seeded board to PNG
//	snake config init|show|name
//
// Global flags:
//
//	--fps <rate>          - Frame rate (default from config: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.snake/scores.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--name <name>         - Player name for the score list
//	--mute                - Disable all sound
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagName       string
	flagMute       bool
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic grid game: steer the snake, eat the food, grow,
and do not hit the walls or yourself. The game speeds up as you score.

Available commands:
  play      - Play in this terminal (default)
  serve     - Start SSH server for remote play
  scores    - View the score list
  best      - Print the best score
  export    - Export the score list to Parquet
  snapshot  - Render a seeded board to PNG
  config    - Manage the config file

Examples:
  snake
  snake play --difficulty hard --name ada
  snake serve --ssh :2222
  snake scores --stats
  snake export scores.parquet`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagName, "name", "", "Player name for the score list")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound effects and music")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset := flagDifficulty
	if preset == "" {
		preset = cfg.Player.Difficulty
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" || p != config.DifficultyNormal {
		config.ApplyPreset(&cfg, p)
	}

	if flagName != "" {
		cfg.Player.Name = flagName
	}
	if flagFPS > 0 {
		cfg.Render.FPS = flagFPS
	}
	if flagMute {
		cfg.Audio.SFX = false
		cfg.Audio.BGM = false
	}
	return cfg, cfg.Validate()
}

// newLogger builds the command logger. Without --log-file, logs go to w.
// The returned closer releases the log file.
func newLogger(w io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	})
	return logger, closer, nil
}
