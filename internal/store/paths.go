package store

import (
	"os"
	"path/filepath"
)

// DataDir returns the path to the tilemenu data directory.
// Uses XDG_DATA_HOME or defaults to ~/.local/share/tilemenu.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "tilemenu"), nil
}

// HistoryPath returns the path to the launch history file.
func HistoryPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "history.jsonl"), nil
}

// PinsPath returns the path to the pinned applications file.
func PinsPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "pins.json"), nil
}
