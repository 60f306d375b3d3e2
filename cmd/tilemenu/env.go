package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tilemenu/internal/config"
	"github.com/jmylchreest/tilemenu/internal/picker"
	"github.com/jmylchreest/tilemenu/internal/wm"
	"github.com/jmylchreest/tilemenu/internal/xdg"
)

var envOpts struct {
	json bool
}

// Environment is the detected runtime environment reported by "tilemenu env".
type Environment struct {
	WM              wm.WM    `json:"wm"`
	FocusedOutput   *wm.Rect `json:"focused_output,omitempty"`
	LangTag         string   `json:"lang_tag,omitempty"`
	CurrentDesktops []string `json:"current_desktops,omitempty"`
	ShareDirs       []string `json:"share_dirs"`
	Pickers         []string `json:"pickers"`
	Picker          string   `json:"picker,omitempty"`
	ConfigPath      string   `json:"config_path"`
	HistoryPath     string   `json:"history_path"`
	Launches        int      `json:"launches"`
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the detected window manager, output and directories",
	Long: `Show what tilemenu detected about its environment: the window manager,
the geometry of the focused output, the menu language tag, the share
directories searched for desktop entries and the available picker programs.`,
	RunE: runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)

	envCmd.Flags().BoolVar(&envOpts.json, "json", false, "Output as JSON")
}

func runEnv(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	d := wm.NewDetector()
	env := Environment{
		WM:              d.Detect(ctx),
		LangTag:         langTag(),
		CurrentDesktops: xdg.CurrentDesktops(),
		ShareDirs:       xdg.SettingsDirs(),
		Pickers:         picker.Available(),
		Picker:          cfg.Picker.Program,
		ConfigPath:      globalOpts.configPath,
		Launches:        history.Count(),
	}
	if env.ConfigPath == "" {
		env.ConfigPath = config.ConfigPath()
	}
	if env.Picker == "" {
		env.Picker, _ = picker.Detect()
	}
	if p, err := resolveHistoryPath(); err == nil {
		env.HistoryPath = p
	}
	if r, err := d.FocusedOutput(ctx, env.WM); err == nil && !r.Empty() {
		env.FocusedOutput = &r
	} else if err != nil {
		logger.Debug("focused output unavailable", "error", err)
	}

	if envOpts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	}

	output := "none"
	if env.FocusedOutput != nil {
		output = env.FocusedOutput.String()
	}
	fmt.Printf("wm:               %s\n", env.WM)
	fmt.Printf("focused output:   %s\n", output)
	fmt.Printf("lang tag:         %s\n", orNone(env.LangTag))
	fmt.Printf("current desktops: %s\n", orNone(strings.Join(env.CurrentDesktops, ":")))
	fmt.Printf("share dirs:       %s\n", strings.Join(env.ShareDirs, ":"))
	fmt.Printf("pickers:          %s\n", orNone(strings.Join(env.Pickers, ", ")))
	fmt.Printf("picker:           %s\n", orNone(env.Picker))
	fmt.Printf("config:           %s\n", env.ConfigPath)
	fmt.Printf("history:          %s (%d launches)\n", env.HistoryPath, env.Launches)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
