package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tilemenu/internal/core"
	"github.com/jmylchreest/tilemenu/internal/picker"
	"github.com/jmylchreest/tilemenu/internal/wm"
)

var menuOpts struct {
	program string
	prompt  string
	dryRun  bool
}

func init() {
	rootCmd.Flags().StringVarP(&menuOpts.program, "picker", "p", "",
		"Picker program (rofi, wofi, fuzzel, bemenu, dmenu; auto-detects if empty)")
	rootCmd.Flags().StringVar(&menuOpts.prompt, "prompt", "",
		"Picker prompt (default from config)")
	rootCmd.Flags().BoolVarP(&menuOpts.dryRun, "dry-run", "n", false,
		"Print the chosen application's desktop ID instead of launching it")
}

// runMenu shows the category menu in the picker and launches the selection.
func runMenu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	program := menuOpts.program
	if program == "" {
		program = cfg.Picker.Program
	}

	p, err := picker.New(program, cfg.Picker.Args)
	if err != nil {
		return err
	}
	p.Args = append(picker.PlacementArgs(p.Program, focusedOutput(ctx)), p.Args...)

	catalog := loadCatalog()
	apps := visibleApps(catalog.Apps, cfg.Menu.ShowHidden)
	if len(apps) == 0 {
		return fmt.Errorf("no applications found")
	}

	prompt := menuOpts.prompt
	if prompt == "" {
		prompt = cfg.Picker.Prompt
	}

	menu := &picker.Menu{Chooser: p, Prompt: prompt}
	app, err := menu.Run(ctx, core.Group(apps, catalog.Table), favourites(apps))
	if errors.Is(err, picker.ErrCancelled) {
		logger.Debug("menu cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	if menuOpts.dryRun {
		fmt.Println(app.ID)
		return nil
	}
	return launchAndRecord(ctx, app)
}

// focusedOutput returns the geometry of the output holding the focus, or
// the zero Rect when it cannot be determined.
func focusedOutput(ctx context.Context) wm.Rect {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	d := wm.NewDetector()
	w := d.Detect(ctx)
	r, err := d.FocusedOutput(ctx, w)
	if err != nil {
		logger.Debug("no focused output geometry", "wm", w, "error", err)
		return wm.Rect{}
	}
	logger.Debug("focused output", "wm", w, "rect", r.String())
	return r
}
