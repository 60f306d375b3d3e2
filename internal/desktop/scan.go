package desktop

import (
	"errors"
	"io/fs"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// ApplicationsSubdir holds the .desktop files below each share directory.
const ApplicationsSubdir = "applications"

// Scanner walks share directories for application entries.
type Scanner struct {
	// LangTag localizes names, e.g. "[de]". Empty disables localization.
	LangTag string
	// CheckTryExec drops entries whose TryExec program is not on PATH.
	CheckTryExec bool
	Logger       *slog.Logger

	lookPath func(string) (string, error)
}

// NewScanner creates a Scanner with TryExec checking enabled.
func NewScanner(langTag string) *Scanner {
	return &Scanner{
		LangTag:      langTag,
		CheckTryExec: true,
		Logger:       slog.Default(),
		lookPath:     exec.LookPath,
	}
}

// Scan is a convenience wrapper around NewScanner(langTag).Scan(dirs).
func Scan(dirs []string, langTag string) []*model.Application {
	return NewScanner(langTag).Scan(dirs)
}

// Scan walks <dir>/applications for every dir in priority order. The first
// entry seen for a desktop ID wins; a Hidden entry claims its ID and is then
// dropped, masking any lower-priority duplicate. Invalid entries are skipped
// with a debug log. A symlinked applications directory is followed.
func (s *Scanner) Scan(dirs []string) []*model.Application {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seen := make(map[string]bool)
	var apps []*model.Application

	for _, dir := range dirs {
		root, err := filepath.EvalSymlinks(filepath.Join(dir, ApplicationsSubdir))
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
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".desktop") {
				return nil
			}

			id, ok := DesktopID(root, path)
			if !ok || seen[id] {
				return nil
			}

			app, err := Parse(path, s.LangTag)
			if err != nil {
				logger.Debug("skipping desktop entry", "path", path, "error", err)
				return nil
			}
			seen[id] = true
			app.ID = id

			if app.Hidden {
				return nil
			}
			if s.CheckTryExec && app.TryExec != "" && !s.tryExecFound(app.TryExec) {
				logger.Debug("TryExec not found", "id", id, "try_exec", app.TryExec)
				return nil
			}
			apps = append(apps, app)
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Debug("skipping directory", "dir", root, "error", err)
		}
	}
	return apps
}

func (s *Scanner) tryExecFound(prog string) bool {
	lookPath := s.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(prog)
	return err == nil
}

// DesktopID derives the desktop ID of path relative to an applications
// directory: "kde/konsole.desktop" becomes "kde-konsole.desktop".
func DesktopID(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-"), true
}

// ApplicationDirs returns <dir>/applications for every share dir.
func ApplicationDirs(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, filepath.Join(d, ApplicationsSubdir))
	}
	return out
}
