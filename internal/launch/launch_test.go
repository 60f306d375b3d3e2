package launch

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tilemenu/internal/model"
)

type fakeActivator struct {
	err    error
	called bool
}

func (f *fakeActivator) Activate(_ context.Context, _ *model.Application) error {
	f.called = true
	return f.err
}

func testLauncher(terminal string) (*Launcher, *[]*exec.Cmd) {
	var started []*exec.Cmd
	l := &Launcher{
		Terminal: terminal,
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
		start: func(cmd *exec.Cmd) error {
			started = append(started, cmd)
			return nil
		},
	}
	return l, &started
}

func TestLauncher_Command(t *testing.T) {
	l, _ := testLauncher("")
	cmd, err := l.Command(&model.Application{ID: "firefox.desktop", Exec: "firefox %u"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", "firefox"}, cmd.Args)
	assert.Empty(t, cmd.Dir)
}

func TestLauncher_CommandTerminal(t *testing.T) {
	l, _ := testLauncher("foot --app-id=menu")
	cmd, err := l.Command(&model.Application{ID: "htop.desktop", Exec: "htop", Terminal: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"foot", "--app-id=menu", "-e", "sh", "-c", "htop"}, cmd.Args)
}

func TestLauncher_TerminalFromEnv(t *testing.T) {
	t.Setenv("TERMINAL", "kitty")
	l, _ := testLauncher("")
	cmd, err := l.Command(&model.Application{Exec: "htop", Terminal: true})
	require.NoError(t, err)
	assert.Equal(t, "kitty", cmd.Args[0])
}

func TestLauncher_TerminalProbe(t *testing.T) {
	t.Setenv("TERMINAL", "")
	l, _ := testLauncher("")
	l.lookPath = func(p string) (string, error) {
		if p == "alacritty" {
			return "/usr/bin/alacritty", nil
		}
		return "", errors.New("not found")
	}
	cmd, err := l.Command(&model.Application{Exec: "htop", Terminal: true})
	require.NoError(t, err)
	assert.Equal(t, "alacritty", cmd.Args[0])
}

func TestLauncher_NoTerminal(t *testing.T) {
	t.Setenv("TERMINAL", "")
	l, _ := testLauncher("")
	_, err := l.Command(&model.Application{Exec: "htop", Terminal: true})
	assert.ErrorIs(t, err, ErrNoTerminal)
}

func TestLauncher_WorkDir(t *testing.T) {
	dir := t.TempDir()
	l, _ := testLauncher("")

	cmd, err := l.Command(&model.Application{Exec: "make", WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, cmd.Dir)

	cmd, err = l.Command(&model.Application{Exec: "make", WorkDir: dir + "/missing"})
	require.NoError(t, err)
	assert.Empty(t, cmd.Dir)
}

func TestLauncher_StartExec(t *testing.T) {
	l, started := testLauncher("")
	require.NoError(t, l.Start(context.Background(), &model.Application{ID: "a.desktop", Exec: "a"}))
	require.Len(t, *started, 1)
	assert.Equal(t, []string{"sh", "-c", "a"}, (*started)[0].Args)
}

func TestLauncher_StartNoCommand(t *testing.T) {
	l, _ := testLauncher("")
	err := l.Start(context.Background(), &model.Application{ID: "a.desktop", Exec: "%U"})

	var le *Error
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "a.desktop", le.ID)
	assert.Equal(t, "exec", le.Op)
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestLauncher_StartActivates(t *testing.T) {
	l, started := testLauncher("")
	act := &fakeActivator{}
	l.Activator = act

	app := &model.Application{ID: "org.example.App.desktop", Exec: "app", DBusActivatable: true}
	require.NoError(t, l.Start(context.Background(), app))
	assert.True(t, act.called)
	assert.Empty(t, *started)
}

func TestLauncher_ActivationFallsBackToExec(t *testing.T) {
	l, started := testLauncher("")
	l.Activator = &fakeActivator{err: errors.New("no such name")}

	app := &model.Application{ID: "org.example.App.desktop", Exec: "app", DBusActivatable: true}
	require.NoError(t, l.Start(context.Background(), app))
	assert.Len(t, *started, 1)
}

func TestLauncher_ActivationFailsWithoutExec(t *testing.T) {
	l, _ := testLauncher("")
	l.Activator = &fakeActivator{err: errors.New("no such name")}

	err := l.Start(context.Background(), &model.Application{ID: "org.example.App.desktop", DBusActivatable: true})
	var le *Error
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "activate", le.Op)
}

func TestObjectPath(t *testing.T) {
	assert.Equal(t, dbus.ObjectPath("/org/gnome/Nautilus"), ObjectPath("org.gnome.Nautilus"))
	assert.Equal(t, dbus.ObjectPath("/org/example/my_app"), ObjectPath("org.example.my-app"))
	assert.True(t, ObjectPath("org.example.my-app").IsValid())
}

func TestPlatformData(t *testing.T) {
	t.Setenv("XDG_ACTIVATION_TOKEN", "")
	t.Setenv("DESKTOP_STARTUP_ID", "")
	assert.Empty(t, PlatformData())

	t.Setenv("XDG_ACTIVATION_TOKEN", "tok")
	data := PlatformData()
	require.Contains(t, data, "activation-token")
	assert.Equal(t, "tok", data["activation-token"].Value())
}
