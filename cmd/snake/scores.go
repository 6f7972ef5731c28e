package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresClear bool
	flagScoresStats bool
	flagScoresTUI   bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score list",
	Long: `Display the kept score list, best first. Ties on score are ranked by
the shorter game. At most 50 games are kept.

Examples:
  snake scores
  snake scores --limit 5
  snake scores --stats
  snake scores --tui
  snake scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the score list (the best score is kept)")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregate statistics")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the list interactively")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to print (0 = all)")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Println("Score list cleared.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.LoadScores()
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Snake")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return nil
	}

	if flagScoresLimit > 0 && len(scores) > flagScoresLimit {
		scores = scores[:flagScoresLimit]
	}

	fmt.Printf("  %-4s  %-*s  %-6s  %-8s  %s\n", "Rank", storage.MaxNameLen, "Name", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-*s  %-6s  %-8s  %s\n", "----", storage.MaxNameLen, "----", "-----", "----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-*s  %-6d  %-8s  %s\n",
			i+1, storage.MaxNameLen, entry.Name, entry.Score,
			entry.Duration.Round(100*time.Millisecond), entry.When.Local().Format("2006-01-02 15:04"))
	}

	if best, err := store.LoadBest(); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}

	if flagScoresStats {
		stats, err := store.GetStats()
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("Games:      %d\n", stats.Games)
		fmt.Printf("High score: %d\n", stats.HighScore)
		fmt.Printf("Average:    %.1f\n", stats.AvgScore)
		fmt.Printf("Time:       %s\n", stats.TotalTime.Round(time.Second))
		fmt.Printf("Last game:  %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
