package wm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFunc(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

// fakeRunner succeeds for commands listed in outputs, keyed by "name args".
func fakeRunner(outputs map[string]string) Runner {
	return func(_ context.Context, name string, args ...string) ([]byte, error) {
		key := strings.Join(append([]string{name}, args...), " ")
		if out, ok := outputs[key]; ok {
			return []byte(out), nil
		}
		return nil, fmt.Errorf("%s: not available", key)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		outputs  map[string]string
		expected WM
	}{
		{"session sway", map[string]string{"DESKTOP_SESSION": "/usr/share/wayland-sessions/sway"}, nil, Sway},
		{"session i3", map[string]string{"DESKTOP_SESSION": "i3"}, nil, I3},
		{"session openbox", map[string]string{"DESKTOP_SESSION": "openbox"}, nil, Openbox},
		{"session wins over sockets", map[string]string{"DESKTOP_SESSION": "i3", "SWAYSOCK": "/run/user/1000/sway-ipc.sock"}, nil, I3},
		{"swaysock", map[string]string{"SWAYSOCK": "/run/user/1000/sway-ipc.sock"}, nil, Sway},
		{"i3sock sway", map[string]string{"I3SOCK": "/run/user/1000/sway-ipc.1000.sock"}, nil, Sway},
		{"i3sock i3", map[string]string{"I3SOCK": "/run/user/1000/i3/ipc-socket.123"}, nil, I3},
		{"probe sway", nil, map[string]string{"swaymsg -t get_seats": "[]"}, Sway},
		{"probe i3", nil, map[string]string{"i3-msg -t get_outputs": "[]"}, I3},
		{"nothing", map[string]string{"DESKTOP_SESSION": "gnome"}, nil, Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Detector{Getenv: envFunc(tt.env), Run: fakeRunner(tt.outputs)}
			assert.Equal(t, tt.expected, d.Detect(context.Background()))
		})
	}
}

func TestWM_IPC(t *testing.T) {
	assert.True(t, Sway.IPC())
	assert.True(t, I3.IPC())
	assert.False(t, Openbox.IPC())
	assert.False(t, Other.IPC())
	assert.Equal(t, "swaymsg", Sway.msgCommand())
	assert.Equal(t, "i3-msg", I3.msgCommand())
}

const workspacesJSON = `[
 {"num":1,"name":"1","focused":false,"output":"eDP-1","rect":{"x":0,"y":0,"width":1920,"height":1080}},
 {"num":2,"name":"2","focused":true,"output":"HDMI-A-1","rect":{"x":1920,"y":0,"width":2560,"height":1440}}
]`

const outputsJSON = `[
 {"name":"eDP-1","active":true,"focused":false,"rect":{"x":0,"y":0,"width":1920,"height":1080}},
 {"name":"HDMI-A-1","active":true,"focused":true,"rect":{"x":1920,"y":0,"width":2560,"height":1440}}
]`

func TestFocusedOutput_Sway(t *testing.T) {
	d := &Detector{Run: fakeRunner(map[string]string{
		"swaymsg -t get_workspaces": workspacesJSON,
		"swaymsg -t get_outputs":    outputsJSON,
	})}

	r, err := d.FocusedOutput(context.Background(), Sway)
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}, r)
	assert.Equal(t, "2560x1440+1920+0", r.String())
}

func TestFocusedOutput_I3(t *testing.T) {
	d := &Detector{Run: fakeRunner(map[string]string{
		"i3-msg -t get_workspaces": workspacesJSON,
		"i3-msg -t get_outputs":    outputsJSON,
	})}

	r, err := d.FocusedOutput(context.Background(), I3)
	require.NoError(t, err)
	assert.Equal(t, 2560, r.Width)
}

func TestFocusedOutput_CommandFails(t *testing.T) {
	d := &Detector{Run: fakeRunner(nil)}
	r, err := d.FocusedOutput(context.Background(), Sway)
	assert.Error(t, err)
	assert.True(t, r.Empty())
}

func TestFocusedRect(t *testing.T) {
	t.Run("falls back to focused output", func(t *testing.T) {
		r, err := focusedRect([]byte(`[]`), []byte(outputsJSON))
		require.NoError(t, err)
		assert.Equal(t, 1920, r.X)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := focusedRect([]byte(`[]`), []byte(`[{"name":"x","active":true,"rect":{"x":0,"y":0,"width":1,"height":1}}]`))
		assert.True(t, errors.Is(err, ErrNoFocusedOutput))
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := focusedRect([]byte(`{`), []byte(outputsJSON))
		assert.Error(t, err)
	})
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	assert.False(t, r.Empty())
	assert.True(t, r.Contains(10, 20))
	assert.True(t, r.Contains(109, 69))
	assert.False(t, r.Contains(110, 20))
	assert.True(t, Rect{}.Empty())
}

func TestMonitorAt(t *testing.T) {
	monitors := []Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 2560, Height: 1440},
	}
	assert.Equal(t, monitors[1], monitorAt(monitors, 2000, 100))
	assert.Equal(t, monitors[0], monitorAt(monitors, 5, 5))
	assert.Equal(t, monitors[0], monitorAt(monitors, -100, -100))
}
