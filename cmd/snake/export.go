package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/export"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.parquet>",
	Short: "Export the score list to Parquet",
	Long: `Write the kept score list to a zstd-compressed Parquet file, one row
per game in rank order. The file is written next to the target and renamed
into place.

Examples:
  snake export scores.parquet
  snake export --db ./scores.db out/scores.parquet`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.LoadScores()
	if err != nil {
		return err
	}
	if err := export.WriteScores(args[0], scores); err != nil {
		return err
	}
	fmt.Printf("Exported %d scores to %s\n", len(scores), args[0])
	return nil
}
