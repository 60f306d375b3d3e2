// Package xdg resolves the XDG base directories used to find desktop entries
// and normalizes the process locale into a desktop-entry language tag.
package xdg

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// System share directories searched after the user's data home.
var systemDataDirs = []string{"/usr/share", "/usr/local/share"}

// SettingsDirs returns the share directories to search for desktop entries,
// highest priority first: ~/.local/share, /usr/share, /usr/local/share and
// then every XDG_DATA_DIRS entry not already listed.
//
// Only path strings are composed here. Directories that do not exist are
// skipped by the scanners.
func SettingsDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return settingsDirs(home, os.Getenv("XDG_DATA_DIRS"))
}

// settingsDirs builds the ordered search path from an explicit home directory
// and a raw XDG_DATA_DIRS value.
func settingsDirs(home, dataDirs string) []string {
	paths := []string{filepath.Join(home, ".local", "share")}
	paths = append(paths, systemDataDirs...)

	if dataDirs == "" {
		return paths
	}

	for _, d := range strings.Split(dataDirs, ":") {
		d = strings.TrimRight(d, "/")
		if d == "" || slices.Contains(paths, d) {
			continue
		}
		paths = append(paths, d)
	}
	return paths
}

// ConfigDirs returns candidate configuration directories for the given
// application name: ~/.config/<app> first, then $XDG_CONFIG_HOME/<app> when set.
func ConfigDirs(app string) []string {
	home, _ := os.UserHomeDir()
	paths := []string{filepath.Join(home, ".config", app)}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		p := filepath.Join(configHome, app)
		if !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// CurrentDesktops returns the entries of XDG_CURRENT_DESKTOP.
func CurrentDesktops() []string {
	v := os.Getenv("XDG_CURRENT_DESKTOP")
	if v == "" {
		return nil
	}
	var desktops []string
	for _, d := range strings.Split(v, ":") {
		if d != "" {
			desktops = append(desktops, d)
		}
	}
	return desktops
}
