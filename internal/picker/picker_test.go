package picker

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tilemenu/internal/model"
	"github.com/jmylchreest/tilemenu/internal/wm"
)

func TestDetect(t *testing.T) {
	prog, err := detect(func(p string) (string, error) {
		if p == "fuzzel" || p == "dmenu" {
			return "/usr/bin/" + p, nil
		}
		return "", errors.New("not found")
	})
	require.NoError(t, err)
	assert.Equal(t, "fuzzel", prog)

	_, err = detect(func(string) (string, error) { return "", errors.New("not found") })
	assert.ErrorIs(t, err, ErrNoProgram)
}

func TestSupported(t *testing.T) {
	assert.Equal(t, []string{"rofi", "wofi", "fuzzel", "bemenu", "dmenu"}, Supported())
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		program  string
		extra    []string
		expected []string
	}{
		{"rofi", nil, []string{"-dmenu", "-p", "Apps", "-i"}},
		{"/usr/bin/wofi", nil, []string{"--dmenu", "--prompt", "Apps", "--insensitive"}},
		{"fuzzel", []string{"--width", "40"}, []string{"--dmenu", "--prompt", "Apps: ", "--width", "40"}},
		{"bemenu", nil, []string{"-p", "Apps", "-i"}},
		{"dmenu", nil, []string{"-p", "Apps", "-i", "-l", "20"}},
		{"custom-menu", nil, []string{"-p", "Apps"}},
	}

	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			p := &Picker{Program: tt.program, Args: tt.extra}
			assert.Equal(t, tt.expected, p.buildArgs("Apps"))
		})
	}
}

func TestChoose(t *testing.T) {
	var gotInput string
	p := &Picker{Program: "rofi", run: func(_ context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
		b, _ := io.ReadAll(stdin)
		gotInput = string(b)
		assert.Equal(t, "rofi", name)
		return []byte("  Beta \n"), nil
	}}

	selected, err := p.Choose(context.Background(), []string{"Alpha", "Beta"}, "Apps")
	require.NoError(t, err)
	assert.Equal(t, "Beta", selected)
	assert.Equal(t, "Alpha\nBeta", gotInput)
}

func TestChoose_EmptyIsCancelled(t *testing.T) {
	p := &Picker{Program: "rofi", run: func(context.Context, io.Reader, string, ...string) ([]byte, error) {
		return []byte("\n"), nil
	}}
	_, err := p.Choose(context.Background(), []string{"a"}, "x")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestChoose_ExitOneIsCancelled(t *testing.T) {
	p := &Picker{Program: "sh", run: func(ctx context.Context, stdin io.Reader, _ string, _ ...string) ([]byte, error) {
		return execRunner(ctx, stdin, "sh", "-c", "exit 1")
	}}
	_, err := p.Choose(context.Background(), []string{"a"}, "x")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestChoose_Failure(t *testing.T) {
	p := &Picker{Program: "sh", run: func(ctx context.Context, stdin io.Reader, _ string, _ ...string) ([]byte, error) {
		return execRunner(ctx, stdin, "sh", "-c", "echo broken >&2; exit 2")
	}}
	_, err := p.Choose(context.Background(), []string{"a"}, "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCancelled)
	assert.Contains(t, err.Error(), "broken")
}

// scriptedChooser returns the given answers in order.
type scriptedChooser struct {
	answers []string
	prompts []string
	shown   [][]string
}

func (s *scriptedChooser) Choose(_ context.Context, lines []string, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.shown = append(s.shown, lines)
	if len(s.answers) == 0 {
		return "", ErrCancelled
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func menuFixture() ([]model.Section, []*model.Application) {
	foot := &model.Application{ID: "foot.desktop", Name: "Foot"}
	htop := &model.Application{ID: "htop.desktop", Name: "htop"}
	firefox := &model.Application{ID: "firefox.desktop", Name: "Firefox"}
	sections := []model.Section{
		{ID: "Network", Label: "Internet", Apps: []*model.Application{firefox}},
		{ID: "System", Label: "System", Apps: []*model.Application{foot, htop}},
	}
	return sections, []*model.Application{htop}
}

func TestMenu_SectionThenApp(t *testing.T) {
	sections, favs := menuFixture()
	c := &scriptedChooser{answers: []string{"▸ System (2)", "Foot"}}
	m := &Menu{Chooser: c}

	app, err := m.Run(context.Background(), sections, favs)
	require.NoError(t, err)
	assert.Equal(t, "foot.desktop", app.ID)

	assert.Equal(t, []string{"Applications", "System"}, c.prompts)
	assert.Equal(t, []string{"★ htop", "▸ Internet (1)", "▸ System (2)"}, c.shown[0])
	assert.Equal(t, []string{"← Back", "Foot", "htop"}, c.shown[1])
}

func TestMenu_Favourite(t *testing.T) {
	sections, favs := menuFixture()
	m := &Menu{Chooser: &scriptedChooser{answers: []string{"★ htop"}}, Prompt: "Run"}

	app, err := m.Run(context.Background(), sections, favs)
	require.NoError(t, err)
	assert.Equal(t, "htop.desktop", app.ID)
}

func TestMenu_Back(t *testing.T) {
	sections, favs := menuFixture()
	c := &scriptedChooser{answers: []string{"▸ Internet (1)", "← Back", "▸ Internet (1)", "Firefox"}}
	m := &Menu{Chooser: c}

	app, err := m.Run(context.Background(), sections, favs)
	require.NoError(t, err)
	assert.Equal(t, "firefox.desktop", app.ID)
	assert.Len(t, c.prompts, 4)
}

func TestMenu_CancelAndNoMatch(t *testing.T) {
	sections, favs := menuFixture()

	_, err := (&Menu{Chooser: &scriptedChooser{}}).Run(context.Background(), sections, favs)
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = (&Menu{Chooser: &scriptedChooser{answers: []string{"typed text"}}}).Run(context.Background(), sections, favs)
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = (&Menu{Chooser: &scriptedChooser{answers: []string{"▸ System (2)", "nope"}}}).Run(context.Background(), sections, favs)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestAppLines_Disambiguates(t *testing.T) {
	apps := []*model.Application{
		{ID: "a/term.desktop", Name: "Terminal"},
		{ID: "b-term.desktop", Name: "Terminal"},
		{ID: "files.desktop", Name: "Files", LocalizedName: "Dateien"},
	}
	lines, m := AppLines(apps)
	assert.Equal(t, []string{"Terminal (a/term.desktop)", "Terminal (b-term.desktop)", "Dateien"}, lines)
	assert.Equal(t, "files.desktop", m["Dateien"].ID)
}

func TestPlacementArgs(t *testing.T) {
	out := wm.Rect{Width: 1920, Height: 1080}

	assert.Equal(t, []string{"-theme-str", "window { width: 640px; }"}, PlacementArgs("rofi", out))
	assert.Equal(t, []string{"--width", "640", "--height", "540"}, PlacementArgs("/usr/bin/wofi", out))
	assert.Nil(t, PlacementArgs("fuzzel", out))
	assert.Nil(t, PlacementArgs("rofi", wm.Rect{}))
}
