// Package main provides the CLI entrypoint for tilemenu.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tilemenu/internal/config"
	"github.com/jmylchreest/tilemenu/internal/store"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose     bool
		historyFile string
		configPath  string
		lang        string
	}
	logger *slog.Logger

	history *store.History
	pins    *store.PinFile
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tilemenu",
	Short: "Categorized application launcher for tiling window managers",
	Long: `tilemenu builds an application menu from the XDG desktop entries
installed on the system, grouped into the freedesktop top-level categories
with their localized names, and launches the chosen program.

Running tilemenu without a subcommand opens the menu in a dmenu-compatible
picker (rofi, wofi, fuzzel, bemenu or dmenu): pick a category, then an
application.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		historyPath, err := resolveHistoryPath()
		if err != nil {
			return fmt.Errorf("failed to resolve history path: %w", err)
		}

		history, err = openHistory(historyPath)
		if err != nil {
			return fmt.Errorf("failed to initialize persistence: %w", err)
		}

		pinsPath, err := store.PinsPath()
		if err != nil {
			return fmt.Errorf("failed to resolve pins path: %w", err)
		}
		pins = store.NewPinFile(pinsPath)

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if history != nil {
			return history.Close()
		}
		return nil
	},
	RunE: runMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.historyFile, "history-file", "",
		"Path to launch history file (default: ~/.local/share/tilemenu/history.jsonl)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/tilemenu/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.lang, "lang", "",
		"Force the menu language, e.g. de_DE (default: LC_ALL, LC_MESSAGES, LANG)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// resolveHistoryPath returns --history-file or the default data path.
func resolveHistoryPath() (string, error) {
	if globalOpts.historyFile != "" {
		return globalOpts.historyFile, nil
	}
	return store.HistoryPath()
}

// openHistory opens and loads the launch history. A file that fails to load
// is recovered once, keeping its valid records.
func openHistory(path string) (*store.History, error) {
	persistence, err := store.NewJSONLPersistence(path)
	if err != nil {
		return nil, err
	}

	h := store.NewHistory(persistence)
	err = h.Hydrate()
	if err == nil {
		return h, nil
	}
	logger.Warn("failed to load launch history, recovering", "path", path, "error", err)
	_ = persistence.Close()

	if err := store.RecoverFromCorruption(path); err != nil {
		return nil, fmt.Errorf("failed to recover %s: %w", path, err)
	}
	persistence, err = store.NewJSONLPersistence(path)
	if err != nil {
		return nil, err
	}
	h = store.NewHistory(persistence)
	if err := h.Hydrate(); err != nil {
		logger.Warn("failed to load recovered launch history", "path", path, "error", err)
	}
	return h, nil
}
