package wm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
)

// Rect is an output rectangle in layout coordinates.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// ErrNoFocusedOutput is returned when no output could be matched to the
// focused workspace.
var ErrNoFocusedOutput = errors.New("no focused output")

type workspace struct {
	Name    string `json:"name"`
	Focused bool   `json:"focused"`
	Output  string `json:"output"`
}

type output struct {
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Focused bool   `json:"focused"`
	Rect    Rect   `json:"rect"`
}

// FocusedOutput returns the rectangle of the output holding the focus.
// sway and i3 are queried with their message tools; other WMs fall back to
// X11. On failure the zero Rect is returned with the error.
func (d *Detector) FocusedOutput(ctx context.Context, w WM) (Rect, error) {
	if !w.IPC() {
		return X11Geometry()
	}

	run := d.Run
	if run == nil {
		run = ExecRunner
	}
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	cmd := w.msgCommand()
	wsData, err := run(ctx, cmd, "-t", "get_workspaces")
	if err != nil {
		return Rect{}, fmt.Errorf("%s get_workspaces: %w", cmd, err)
	}
	outData, err := run(ctx, cmd, "-t", "get_outputs")
	if err != nil {
		return Rect{}, fmt.Errorf("%s get_outputs: %w", cmd, err)
	}
	return focusedRect(wsData, outData)
}

// focusedRect matches the focused workspace to its output.
func focusedRect(workspacesJSON, outputsJSON []byte) (Rect, error) {
	var workspaces []workspace
	if err := json.Unmarshal(workspacesJSON, &workspaces); err != nil {
		return Rect{}, fmt.Errorf("parse workspaces: %w", err)
	}
	var outputs []output
	if err := json.Unmarshal(outputsJSON, &outputs); err != nil {
		return Rect{}, fmt.Errorf("parse outputs: %w", err)
	}

	focusedName := ""
	for _, ws := range workspaces {
		if ws.Focused {
			focusedName = ws.Output
			break
		}
	}

	for _, o := range outputs {
		if focusedName != "" && o.Name == focusedName {
			return o.Rect, nil
		}
	}
	// sway marks the focused output directly.
	for _, o := range outputs {
		if o.Focused && o.Active {
			return o.Rect, nil
		}
	}
	return Rect{}, ErrNoFocusedOutput
}

// X11Geometry returns the monitor under the pointer using Xinerama, or the
// default screen size when Xinerama is unavailable.
func X11Geometry() (Rect, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return Rect{}, fmt.Errorf("failed to connect to X server: %w", err)
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	full := Rect{Width: int(screen.WidthInPixels), Height: int(screen.HeightInPixels)}

	if err := xinerama.Init(conn); err != nil {
		slog.Debug("xinerama unavailable", "error", err)
		return full, nil
	}
	screens, err := xinerama.QueryScreens(conn).Reply()
	if err != nil || len(screens.ScreenInfo) == 0 {
		return full, nil
	}

	monitors := make([]Rect, 0, len(screens.ScreenInfo))
	for _, s := range screens.ScreenInfo {
		monitors = append(monitors, Rect{X: int(s.XOrg), Y: int(s.YOrg), Width: int(s.Width), Height: int(s.Height)})
	}

	pointer, err := xproto.QueryPointer(conn, screen.Root).Reply()
	if err != nil {
		return monitors[0], nil
	}
	return monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)), nil
}

// monitorAt returns the monitor containing the point, or the first one.
func monitorAt(monitors []Rect, x, y int) Rect {
	for _, m := range monitors {
		if m.Contains(x, y) {
			return m
		}
	}
	return monitors[0]
}
