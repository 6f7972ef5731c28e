package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/export"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file.parquet>",
	Short: "Merge a Parquet score export into the score list",
	Long: `Read a file written by "snake export" and merge its rows into the
score list. Games already present (same run id) are skipped, the list is
pruned back to its cap and the best score is raised if the file holds a
higher one.

Examples:
  snake import scores.parquet
  snake import --db ./scores.db backup/scores.parquet`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(_ *cobra.Command, args []string) error {
	records, err := export.ReadScores(args[0])
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	added, err := store.ImportScores(records)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d of %d scores from %s\n", added, len(records), args[0])
	return nil
}
