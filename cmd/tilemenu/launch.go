package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var launchOpts struct {
	dryRun   bool
	noRecord bool
}

var launchCmd = &cobra.Command{
	Use:   "launch <id|name|index>",
	Short: "Launch an application",
	Long: `Launch an application by desktop ID (".desktop" may be omitted), name,
or 1-based index in "tilemenu list" order.

D-Bus activatable applications are activated over the session bus; everything
else runs detached through sh -c, inside a terminal for Terminal=true entries.

Examples:
  tilemenu launch firefox
  tilemenu launch org.gnome.Nautilus.desktop
  tilemenu launch htop --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().BoolVarP(&launchOpts.dryRun, "dry-run", "n", false,
		"Print the command that would run")
	launchCmd.Flags().BoolVar(&launchOpts.noRecord, "no-record", false,
		"Do not add the launch to the history")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	catalog := loadCatalog()
	apps := visibleApps(catalog.Apps, true)
	applyListSort(apps)

	app, err := findApp(apps, strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}

	if launchOpts.dryRun {
		c, err := newLauncher().Command(app)
		if err != nil {
			return fmt.Errorf("failed to build command for %s: %w", app.ID, err)
		}
		if app.DBusActivatable {
			fmt.Printf("# D-Bus activation of %s, falling back to:\n", app.BaseID())
		}
		fmt.Println(strings.Join(c.Args, " "))
		return nil
	}

	if launchOpts.noRecord {
		return newLauncher().Start(ctx, app)
	}
	return launchAndRecord(ctx, app)
}
