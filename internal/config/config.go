// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultFavourites = 5
	DefaultPrompt     = "Apps"
	DefaultOlderThan  = "90d"
	DefaultKeep       = 1000
	DefaultDmenuTmpl  = "{{.Name}} | {{.SectionName}}"
)

// Config represents the tilemenu configuration.
type Config struct {
	Menu      MenuConfig      `toml:"menu"`
	Picker    PickerConfig    `toml:"picker"`
	Templates TemplatesConfig `toml:"templates"`
	History   HistoryConfig   `toml:"history"`
	TUI       TUIConfig       `toml:"tui"`
}

// MenuConfig holds menu building options.
type MenuConfig struct {
	Lang       string `toml:"lang"`        // Forced locale, e.g. "de_DE" (empty = environment)
	Terminal   string `toml:"terminal"`    // Terminal emulator for Terminal=true entries
	Favourites int    `toml:"favourites"`  // Most-launched entries shown first (0 = none)
	ShowPinned bool   `toml:"show_pinned"` // Show pinned entries first
	ShowHidden bool   `toml:"show_hidden"` // Include NoDisplay and desktop-restricted entries
}

// PickerConfig holds external picker options.
type PickerConfig struct {
	Program string   `toml:"program"` // rofi, wofi, fuzzel, bemenu, dmenu (empty = detect)
	Args    []string `toml:"args"`    // Extra arguments appended to the program's own
	Prompt  string   `toml:"prompt"`
}

// TemplatesConfig holds output templates.
type TemplatesConfig struct {
	Dmenu  string            `toml:"dmenu"`
	Custom map[string]string `toml:"custom"`
}

// HistoryConfig holds default prune options.
type HistoryConfig struct {
	OlderThan string `toml:"older_than"` // Default age threshold (0 = no limit)
	Keep      int    `toml:"keep"`       // Max records to keep (0 = unlimited)
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp  bool   `toml:"show_help"`
	Clipboard string `toml:"clipboard"` // Auto-detected if empty
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Menu: MenuConfig{
			Favourites: DefaultFavourites,
			ShowPinned: true,
		},
		Picker: PickerConfig{
			Prompt: DefaultPrompt,
		},
		Templates: TemplatesConfig{
			Dmenu:  DefaultDmenuTmpl,
			Custom: make(map[string]string),
		},
		History: HistoryConfig{
			OlderThan: DefaultOlderThan,
			Keep:      DefaultKeep,
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tilemenu", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetTemplate returns the template for the given name.
// Custom templates shadow the built-in "dmenu" one. Returns empty string if
// not found.
func (c *Config) GetTemplate(name string) string {
	if tmpl, ok := c.Templates.Custom[name]; ok {
		return tmpl
	}
	if name == "dmenu" {
		return c.Templates.Dmenu
	}
	return ""
}
