package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tilemenu/internal/core"
	"github.com/jmylchreest/tilemenu/internal/store"
)

var pruneOpts struct {
	olderThan string
	keep      int
	dryRun    bool
	clear     bool
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old launches from history",
	Long: `Remove old launch records from the persistent history. Defaults come
from the [history] section of the config file.

Examples:
  # Forget launches older than 30 days
  tilemenu prune --older-than 30d

  # Keep only the 500 most recent launches
  tilemenu prune --keep 500

  # Preview what would be removed (dry run)
  tilemenu prune --dry-run

  # Forget everything
  tilemenu prune --clear`,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().StringVar(&pruneOpts.olderThan, "older-than", "",
		"Remove launches older than this duration (e.g., 48h, 7d, 1w; 0=no limit)")
	pruneCmd.Flags().IntVar(&pruneOpts.keep, "keep", -1,
		"Keep only the N most recent launches (0=unlimited)")
	pruneCmd.Flags().BoolVar(&pruneOpts.dryRun, "dry-run", false,
		"Show what would be removed without actually removing")
	pruneCmd.Flags().BoolVar(&pruneOpts.clear, "clear", false,
		"Remove every launch record")
}

func runPrune(cmd *cobra.Command, args []string) error {
	if pruneOpts.clear {
		if pruneOpts.dryRun {
			fmt.Printf("Would remove %d launch(es)\n", history.Count())
			return nil
		}
		n := history.Count()
		if err := history.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Printf("Removed %d launch(es)\n", n)
		return nil
	}

	olderThanStr := pruneOpts.olderThan
	if !cmd.Flags().Changed("older-than") {
		olderThanStr = cfg.History.OlderThan
	}
	olderThan, err := core.ParseDuration(olderThanStr)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}

	keep := pruneOpts.keep
	if !cmd.Flags().Changed("keep") {
		keep = cfg.History.Keep
	}

	if olderThan == 0 && keep <= 0 {
		return fmt.Errorf("specify --older-than or --keep")
	}

	if history.Count() == 0 {
		fmt.Println("No launches in history")
		return nil
	}

	if pruneOpts.dryRun {
		// Prune an in-memory copy to count without touching the file.
		preview := store.NewHistory(nil)
		for _, r := range history.All() {
			if err := preview.Add(r); err != nil {
				return err
			}
		}
		removed, err := preview.Prune(olderThan, keep)
		if err != nil {
			return err
		}
		fmt.Printf("Would remove %d launch(es), keeping %d\n", removed, preview.Count())
		return nil
	}

	removed, err := history.Prune(olderThan, keep)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	if removed == 0 {
		fmt.Println("No launches to remove")
		return nil
	}
	fmt.Printf("Removed %d launch(es)\n", removed)
	return nil
}
