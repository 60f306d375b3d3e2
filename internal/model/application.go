// Package model defines the core data structures for tilemenu.
package model

import (
	"slices"
	"strings"

	"github.com/jmylchreest/tilemenu/internal/category"
)

// Application is a parsed Type=Application desktop entry.
type Application struct {
	// ID is the desktop ID: the path below applications/ with "/" replaced by "-".
	ID   string `json:"id" yaml:"id"`
	Path string `json:"path" yaml:"path"`

	Name          string   `json:"name" yaml:"name"`
	LocalizedName string   `json:"localized_name,omitempty" yaml:"localized_name,omitempty"`
	GenericName   string   `json:"generic_name,omitempty" yaml:"generic_name,omitempty"`
	Comment       string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Keywords      []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	Exec     string `json:"exec,omitempty" yaml:"exec,omitempty"`
	TryExec  string `json:"try_exec,omitempty" yaml:"try_exec,omitempty"`
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`
	WorkDir  string `json:"working_dir,omitempty" yaml:"working_dir,omitempty"` // Path= key
	Terminal bool   `json:"terminal,omitempty" yaml:"terminal,omitempty"`

	NoDisplay       bool `json:"no_display,omitempty" yaml:"no_display,omitempty"`
	Hidden          bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	DBusActivatable bool `json:"dbus_activatable,omitempty" yaml:"dbus_activatable,omitempty"`

	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	OnlyShowIn []string `json:"only_show_in,omitempty" yaml:"only_show_in,omitempty"`
	NotShowIn  []string `json:"not_show_in,omitempty" yaml:"not_show_in,omitempty"`
}

// DisplayName returns the localized name when present, otherwise Name.
func (a *Application) DisplayName() string {
	if a.LocalizedName != "" {
		return a.LocalizedName
	}
	return a.Name
}

// Buckets maps each of the entry's categories to its top-level category.
// The result is distinct and keeps first-occurrence order. Entries whose
// categories are all unknown land in Other.
func (a *Application) Buckets() []string {
	var buckets []string
	for _, c := range a.Categories {
		main, ok := category.Classify(c)
		if !ok || slices.Contains(buckets, main) {
			continue
		}
		buckets = append(buckets, main)
	}
	if len(buckets) == 0 {
		return []string{category.Other}
	}
	return buckets
}

// PrimaryCategory returns the first bucket.
func (a *Application) PrimaryCategory() string {
	return a.Buckets()[0]
}

// Visible reports whether the entry should be shown on a desktop whose
// XDG_CURRENT_DESKTOP names are given. NoDisplay and Hidden entries are never
// visible. OnlyShowIn requires a match and NotShowIn excludes one; with no
// current desktop names OnlyShowIn entries are hidden.
func (a *Application) Visible(currentDesktops []string) bool {
	if a.NoDisplay || a.Hidden {
		return false
	}
	if len(a.OnlyShowIn) > 0 && !intersects(a.OnlyShowIn, currentDesktops) {
		return false
	}
	if intersects(a.NotShowIn, currentDesktops) {
		return false
	}
	return true
}

// BaseID returns the desktop ID without its .desktop suffix. For
// D-Bus activatable applications this is the well-known bus name.
func (a *Application) BaseID() string {
	return strings.TrimSuffix(a.ID, ".desktop")
}

// Matches reports whether query (case-insensitive) occurs in the entry's
// name, generic name, comment, keywords or Exec line.
func (a *Application) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	fields := []string{a.Name, a.LocalizedName, a.GenericName, a.Comment, a.Exec}
	fields = append(fields, a.Keywords...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				return true
			}
		}
	}
	return false
}

// Section is one menu heading: a top-level category and its applications.
type Section struct {
	ID    string         `json:"id" yaml:"id"`
	Label string         `json:"label" yaml:"label"`
	Apps  []*Application `json:"apps" yaml:"apps"`
}
