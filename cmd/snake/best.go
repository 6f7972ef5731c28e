package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Print the best score",
	Long:  `Print the durable best score. It survives clearing the score list.`,
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()

		best, err := store.LoadBest()
		if err != nil {
			return err
		}
		fmt.Println(best)
		return nil
	},
}
