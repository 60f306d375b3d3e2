package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tilemenu/internal/core"
)

var pinCmd = &cobra.Command{
	Use:   "pin [id|name...]",
	Short: "Pin applications to the top of the menu",
	Long: `Pin applications so they are offered first in the menu and the TUI.
Without arguments, lists the pinned desktop IDs.

Examples:
  tilemenu pin firefox foot
  tilemenu pin`,
	RunE: runPin,
}

var unpinCmd = &cobra.Command{
	Use:   "unpin <id|name...>",
	Short: "Remove applications from the pinned list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUnpin,
}

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
}

func runPin(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		ids, err := pins.Load()
		if err != nil {
			return fmt.Errorf("failed to load pins: %w", err)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	apps := loadCatalog().Apps
	for _, ref := range args {
		app, err := findApp(apps, ref)
		if err != nil {
			return err
		}
		changed, err := pins.Add(app.ID)
		if err != nil {
			return fmt.Errorf("failed to pin %s: %w", app.ID, err)
		}
		if changed {
			fmt.Printf("Pinned %s\n", app.ID)
		} else {
			fmt.Printf("%s is already pinned\n", app.ID)
		}
	}
	return nil
}

func runUnpin(cmd *cobra.Command, args []string) error {
	apps := loadCatalog().Apps
	for _, ref := range args {
		// Pins of uninstalled applications can still be removed by ID.
		id := ref
		if app := core.LookupByID(apps, ref); app != nil {
			id = app.ID
		} else if app := core.LookupByName(apps, ref); app != nil {
			id = app.ID
		}

		changed, err := pins.Remove(id)
		if err != nil {
			return fmt.Errorf("failed to unpin %s: %w", id, err)
		}
		if changed {
			fmt.Printf("Unpinned %s\n", id)
		} else {
			fmt.Printf("%s is not pinned\n", id)
		}
	}
	return nil
}
