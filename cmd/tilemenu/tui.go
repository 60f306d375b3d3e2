package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tilemenu/internal/tui"
	"github.com/jmylchreest/tilemenu/internal/xdg"
)

var tuiOpts struct {
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and launch applications in the terminal",
	Long: `Launch the interactive terminal user interface.

The TUI provides:
  - Applications grouped by category, pinned entries first
  - Live search and filter expressions
  - Detail view with the expanded command line
  - Pinning and launch counts
  - Automatic rescans when desktop entries change

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       Launch application
  i           Show details
  p           Pin or unpin
  c           Copy command line to clipboard
  y           Copy desktop ID to clipboard
  /           Search
  r           Rescan desktop entries
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not watch desktop entry directories for changes")
}

func runTUI(cmd *cobra.Command, args []string) error {
	historyPath, err := resolveHistoryPath()
	if err != nil {
		return err
	}

	var roots []string
	if !tuiOpts.noWatch {
		roots = watchDirs()
	}

	app, err := tui.Run(tui.RunOptions{
		Options: tui.Options{
			Config:   cfg,
			History:  history,
			Pins:     pins,
			Launcher: newLauncher(),
			Load:     loadCatalog,
			Desktops: xdg.CurrentDesktops(),
		},
		HistoryPath: historyPath,
		WatchDirs:   roots,
	})
	if app != nil {
		logger.Debug("launched from tui", "id", app.ID)
	}
	return err
}
