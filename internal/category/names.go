package category

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/tilemenu/internal/xdg"
)

// desktopEntryHeader is the only section whose keys are read.
const desktopEntryHeader = "[Desktop Entry]"

// DirectoriesSubdir holds the .directory files below each share directory.
const DirectoriesSubdir = "desktop-directories"

// Table maps a category id to its display label.
type Table map[string]string

// Label returns the label for id, falling back to the id itself.
func (t Table) Label(id string) string {
	if l, ok := t[id]; ok && l != "" {
		return l
	}
	return id
}

// DefaultTable labels every top-level category with its own id. It is used
// when no language tag is available.
func DefaultTable() Table {
	t := make(Table, len(topLevel))
	for _, id := range topLevel {
		t[id] = id
	}
	return t
}

// TranslateName reads the Name= and localized Name<langTag>= values from the
// [Desktop Entry] section of path. Empty strings mean the value was absent.
// Unreadable files and files that are not valid UTF-8 yield two empty strings.
//
// For langTag "[en]" the localized name is the plain name.
func TranslateName(path, langTag string) (name, localized string) {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return "", ""
	}

	localizedKey := "Name" + langTag
	english := langTag == xdg.EnglishTag

	inEntry := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), len(data)+1)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "[") {
			inEntry = strings.TrimSpace(line) == desktopEntryHeader
			continue
		}
		if !inEntry {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Name="):
			name = nameValue(line)
			if english {
				localized = name
			}
		case !english && strings.HasPrefix(line, localizedKey+"="):
			localized = nameValue(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", ""
	}
	return name, localized
}

// nameValue returns the trimmed text after the first '='.
func nameValue(line string) string {
	_, value, _ := strings.Cut(line, "=")
	return strings.TrimSpace(value)
}

// BuildTable walks <dir>/desktop-directories for every dir, in priority
// order, and builds the category table. The first directory to supply a
// label for a category wins. A label found for a sub-category is also
// assigned to its top-level category if that is not yet labelled. The
// table always ends up with an entry for Other. Symlinked directories and
// files are followed.
func BuildTable(langTag string, dirs []string) Table {
	return buildTable(slog.Default(), langTag, dirs)
}

func buildTable(logger *slog.Logger, langTag string, dirs []string) Table {
	table := make(Table)

	for _, dir := range dirs {
		root, err := filepath.EvalSymlinks(filepath.Join(dir, DirectoriesSubdir))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Debug("skipping directory", "dir", dir, "error", err)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				logger.Debug("skipping unreadable path", "path", path, "error", err)
				return nil
			}
			if !isRegularFile(path, d) {
				return nil
			}

			name, localized := TranslateName(path, langTag)
			if name == "" || localized == "" {
				return nil
			}
			if _, exists := table[name]; !exists {
				table[name] = localized
			}
			if main, ok := Classify(name); ok {
				if _, exists := table[main]; !exists {
					table[main] = localized
				}
			}
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Debug("skipping directory", "dir", root, "error", err)
		}
	}

	if _, ok := table[Other]; !ok {
		table[Other] = Other
	}
	return table
}

// isRegularFile reports whether d is a regular file or a symlink to one.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// LocalizedNames builds the category table from the standard XDG share
// directories.
func LocalizedNames(langTag string) Table {
	return BuildTable(langTag, xdg.SettingsDirs())
}

// Resolve returns the category table for the given forced locale (empty for
// the process locale). Nil dirs means the standard XDG share directories.
// Without a usable language tag the default table is returned.
func Resolve(forcedLang string, dirs []string) Table {
	tag, ok := xdg.LocaleTag(forcedLang)
	if !ok {
		return DefaultTable()
	}
	if dirs == nil {
		return LocalizedNames(tag)
	}
	return BuildTable(tag, dirs)
}
