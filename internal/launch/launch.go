// Package launch starts applications from their desktop entries.
package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/jmylchreest/tilemenu/internal/desktop"
	"github.com/jmylchreest/tilemenu/internal/model"
)

// Terminals probed when no terminal is configured and $TERMINAL is unset.
var defaultTerminals = []string{"foot", "alacritty", "kitty", "wezterm", "gnome-terminal", "konsole", "xterm"}

// ErrNoCommand is returned when an entry has nothing to execute.
var ErrNoCommand = errors.New("no command to execute")

// ErrNoTerminal is returned for Terminal=true entries when no terminal emulator is found.
var ErrNoTerminal = errors.New("no terminal emulator found")

// Error describes a failed launch.
type Error struct {
	ID  string // desktop ID
	Op  string // "activate", "exec"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("launch %s: %s: %v", e.ID, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Activator activates D-Bus activatable applications.
type Activator interface {
	Activate(ctx context.Context, app *model.Application) error
}

// Launcher starts applications detached from the calling process.
type Launcher struct {
	// Terminal wraps Terminal=true entries as <Terminal> -e sh -c <cmd>.
	Terminal string
	// Activator is tried first for DBusActivatable entries. Nil disables activation.
	Activator Activator
	Logger    *slog.Logger

	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
}

// New creates a Launcher using terminal (empty to auto-detect) and the
// session bus for activation.
func New(terminal string) *Launcher {
	return &Launcher{
		Terminal:  terminal,
		Activator: &BusActivator{},
		Logger:    slog.Default(),
		lookPath:  exec.LookPath,
		start:     startDetached,
	}
}

// Start launches app. D-Bus activatable entries are activated on the
// session bus, falling back to Exec when activation fails and an Exec line
// exists.
func (l *Launcher) Start(ctx context.Context, app *model.Application) error {
	logger := l.logger()

	if app.DBusActivatable && l.Activator != nil {
		err := l.Activator.Activate(ctx, app)
		if err == nil {
			logger.Debug("activated over D-Bus", "id", app.ID)
			return nil
		}
		if app.Exec == "" {
			return &Error{ID: app.ID, Op: "activate", Err: err}
		}
		logger.Debug("D-Bus activation failed, falling back to Exec", "id", app.ID, "error", err)
	}

	cmd, err := l.Command(app)
	if err != nil {
		return &Error{ID: app.ID, Op: "exec", Err: err}
	}

	logger.Debug("starting application", "id", app.ID, "args", cmd.Args, "dir", cmd.Dir)
	startFn := l.start
	if startFn == nil {
		startFn = startDetached
	}
	if err := startFn(cmd); err != nil {
		return &Error{ID: app.ID, Op: "exec", Err: err}
	}
	return nil
}

// Command builds the command that runs app's expanded Exec line.
func (l *Launcher) Command(app *model.Application) (*exec.Cmd, error) {
	line := desktop.ExpandExec(app)
	if line == "" {
		return nil, ErrNoCommand
	}

	args := []string{"sh", "-c", line}
	if app.Terminal {
		term, err := l.terminal()
		if err != nil {
			return nil, err
		}
		args = append(strings.Fields(term), append([]string{"-e"}, args...)...)
	}

	cmd := exec.Command(args[0], args[1:]...)
	if app.WorkDir != "" {
		if info, err := os.Stat(app.WorkDir); err == nil && info.IsDir() {
			cmd.Dir = app.WorkDir
		}
	}
	return cmd, nil
}

// terminal resolves the terminal emulator command.
func (l *Launcher) terminal() (string, error) {
	if l.Terminal != "" {
		return l.Terminal, nil
	}
	if t := os.Getenv("TERMINAL"); t != "" {
		return t, nil
	}
	lookPath := l.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, t := range defaultTerminals {
		if _, err := lookPath(t); err == nil {
			return t, nil
		}
	}
	return "", ErrNoTerminal
}

func (l *Launcher) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// startDetached starts cmd in its own session and reaps it in the background.
func startDetached(cmd *exec.Cmd) error {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
