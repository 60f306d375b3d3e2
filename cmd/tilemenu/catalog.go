package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jmylchreest/tilemenu/internal/category"
	"github.com/jmylchreest/tilemenu/internal/core"
	"github.com/jmylchreest/tilemenu/internal/desktop"
	"github.com/jmylchreest/tilemenu/internal/launch"
	"github.com/jmylchreest/tilemenu/internal/model"
	"github.com/jmylchreest/tilemenu/internal/tui"
	"github.com/jmylchreest/tilemenu/internal/xdg"
)

// menuLang returns the forced language: --lang, then the config file.
func menuLang() string {
	if globalOpts.lang != "" {
		return globalOpts.lang
	}
	if cfg != nil {
		return cfg.Menu.Lang
	}
	return ""
}

// langTag returns the desktop-entry language tag, or "" when the locale
// has none.
func langTag() string {
	tag, ok := xdg.LocaleTag(menuLang())
	if !ok {
		return ""
	}
	return tag
}

// loadCatalog scans the share directories for applications and resolves
// the category labels for the current language.
func loadCatalog() tui.Catalog {
	dirs := xdg.SettingsDirs()
	tag := langTag()

	table := category.Resolve(menuLang(), dirs)

	scanner := desktop.NewScanner(tag)
	scanner.Logger = logger
	apps := scanner.Scan(dirs)

	logger.Debug("scanned desktop entries", "apps", len(apps), "lang", tag, "dirs", dirs)
	return tui.Catalog{Apps: apps, Table: table}
}

// visibleApps drops entries that should not be shown on this desktop.
func visibleApps(apps []*model.Application, showHidden bool) []*model.Application {
	return core.Filter(apps, core.FilterOptions{
		Desktops:   xdg.CurrentDesktops(),
		ShowHidden: showHidden,
	})
}

// watchDirs lists the applications/ and desktop-directories/ trees.
func watchDirs() []string {
	dirs := xdg.SettingsDirs()
	roots := desktop.ApplicationDirs(dirs)
	for _, d := range dirs {
		roots = append(roots, filepath.Join(d, category.DirectoriesSubdir))
	}
	return roots
}

// favourites returns pinned applications (when enabled) followed by the
// most launched ones, without duplicates.
func favourites(apps []*model.Application) []*model.Application {
	var ids []string
	if cfg.Menu.ShowPinned && pins != nil {
		pinned, err := pins.Load()
		if err != nil {
			logger.Warn("failed to load pins", "error", err)
		}
		ids = append(ids, pinned...)
	}
	if cfg.Menu.Favourites > 0 && history != nil {
		ids = append(ids, history.Favourites(cfg.Menu.Favourites)...)
	}

	seen := make(map[string]bool)
	var out []*model.Application
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if a := core.LookupByID(apps, id); a != nil {
			out = append(out, a)
		}
	}
	return out
}

func newLauncher() *launch.Launcher {
	l := launch.New(cfg.Menu.Terminal)
	l.Logger = logger
	return l
}

// launchAndRecord starts app and appends it to the launch history.
func launchAndRecord(ctx context.Context, app *model.Application) error {
	if err := newLauncher().Start(ctx, app); err != nil {
		return fmt.Errorf("failed to launch %s: %w", app.ID, err)
	}
	if _, err := history.Record(app); err != nil {
		logger.Warn("failed to record launch", "id", app.ID, "error", err)
	}
	logger.Debug("launched", "id", app.ID, "name", app.DisplayName())
	return nil
}

// findApp resolves a desktop ID (with or without ".desktop"), then a name,
// then a 1-based index into apps.
func findApp(apps []*model.Application, ref string) (*model.Application, error) {
	if a := core.LookupByID(apps, ref); a != nil {
		return a, nil
	}
	if a := core.LookupByName(apps, ref); a != nil {
		return a, nil
	}
	if idx, err := strconv.Atoi(ref); err == nil {
		if a := core.LookupByIndex(apps, idx); a != nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("application %q not found", ref)
}
