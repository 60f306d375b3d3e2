package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tilemenu/internal/category"
	"github.com/jmylchreest/tilemenu/internal/config"
	"github.com/jmylchreest/tilemenu/internal/model"
	"github.com/jmylchreest/tilemenu/internal/store"
)

type fakeLauncher struct {
	started []string
	err     error
}

func (f *fakeLauncher) Start(_ context.Context, app *model.Application) error {
	if f.err != nil {
		return f.err
	}
	f.started = append(f.started, app.ID)
	return nil
}

func testCatalog() Catalog {
	return Catalog{
		Apps: []*model.Application{
			{ID: "firefox.desktop", Name: "Firefox", Exec: "firefox %u", Categories: []string{"Network", "WebBrowser"}},
			{ID: "gimp.desktop", Name: "GIMP", Exec: "gimp %U", Categories: []string{"Graphics"}},
			{ID: "htop.desktop", Name: "htop", Exec: "htop", Terminal: true, Categories: []string{"System", "Monitor"}},
			{ID: "hidden.desktop", Name: "Hidden", Exec: "hidden", NoDisplay: true},
		},
		Table: category.DefaultTable(),
	}
}

func newTestModel(t *testing.T, launcher Launcher) (Model, *store.History, *store.PinFile) {
	t.Helper()
	history := store.NewHistory(nil)
	pins := store.NewPinFile(filepath.Join(t.TempDir(), "pins.json"))

	m := New(Options{
		Config:   config.DefaultConfig(),
		History:  history,
		Pins:     pins,
		Launcher: launcher,
		Load:     testCatalog,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, m.loadCatalog())
	return m, history, pins
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func itemIDs(m Model) []string {
	var ids []string
	for _, it := range m.list.Items() {
		ids = append(ids, it.(appItem).app.ID)
	}
	return ids
}

func TestModel_GroupsVisibleApps(t *testing.T) {
	m, _, _ := newTestModel(t, &fakeLauncher{})

	// Graphics, Network, System by label; NoDisplay entries are hidden.
	assert.Equal(t, []string{"gimp.desktop", "firefox.desktop", "htop.desktop"}, itemIDs(m))

	first := m.list.Items()[0].(appItem)
	assert.Equal(t, "Graphics", first.section)
	assert.Equal(t, "GIMP", first.Title())
}

func TestModel_ShowHidden(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Menu.ShowHidden = true

	m := New(Options{Config: cfg, Load: testCatalog})
	m = update(t, m, m.loadCatalog())
	assert.Contains(t, itemIDs(m), "hidden.desktop")
}

func TestModel_LaunchRecordsHistory(t *testing.T) {
	launcher := &fakeLauncher{}
	m, history, _ := newTestModel(t, launcher)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	launched, ok := msg.(launchedMsg)
	require.True(t, ok)
	require.NoError(t, launched.err)

	m = update(t, m, msg)
	require.NotNil(t, m.Launched())
	assert.Equal(t, "gimp.desktop", m.Launched().ID)
	assert.Equal(t, []string{"gimp.desktop"}, launcher.started)
	assert.Equal(t, 1, history.Count())
}

func TestModel_LaunchFailureShowsStatus(t *testing.T) {
	m, history, _ := newTestModel(t, &fakeLauncher{err: errors.New("boom")})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Nil(t, m.Launched())
	assert.Equal(t, 0, history.Count())

	_, cmd = m.Update(launchedMsg{err: errors.New("boom")})
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.statusMsg, "boom")
}

func TestModel_TogglePin(t *testing.T) {
	m, _, pins := newTestModel(t, &fakeLauncher{})

	// Move to firefox and pin it.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, runes("p"))

	ids, err := pins.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"firefox.desktop"}, ids)

	items := m.list.Items()
	require.Len(t, items, 4)
	first := items[0].(appItem)
	assert.Equal(t, "firefox.desktop", first.app.ID)
	assert.Equal(t, pinnedLabel, first.section)
	assert.True(t, first.pinned)
	assert.Equal(t, "★ Firefox", first.Title())

	// Pinned entry is selected at the top; unpin it again.
	m.list.Select(0)
	m = update(t, m, runes("p"))
	ids, err = pins.Load()
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Len(t, m.list.Items(), 3)
}

func TestModel_Search(t *testing.T) {
	m, _, _ := newTestModel(t, &fakeLauncher{})

	m = update(t, m, runes("/"))
	assert.Equal(t, ModeSearch, m.mode)

	for _, r := range "fire" {
		m = update(t, m, runes(string(r)))
	}
	assert.Equal(t, "fire", m.searchQuery)
	assert.Equal(t, []string{"firefox.desktop"}, itemIDs(m))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.mode)
	assert.Len(t, m.list.Items(), 3)
}

func TestModel_SearchFilterExpression(t *testing.T) {
	m, _, _ := newTestModel(t, &fakeLauncher{})

	m = update(t, m, runes("/"))
	for _, r := range "terminal=true" {
		m = update(t, m, runes(string(r)))
	}
	assert.Equal(t, []string{"htop.desktop"}, itemIDs(m))
}

func TestModel_SearchTypesQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, &fakeLauncher{})

	m = update(t, m, runes("/"))
	m = update(t, m, runes("q"))
	assert.Equal(t, ModeSearch, m.mode)
	assert.Equal(t, "q", m.searchQuery)
}

func TestModel_HistoryChangeUpdatesUsage(t *testing.T) {
	m, history, _ := newTestModel(t, &fakeLauncher{})

	_, err := history.Record(testCatalog().Apps[2])
	require.NoError(t, err)

	msg := m.watchForChanges()
	require.IsType(t, historyChangedMsg{}, msg)
	m = update(t, m, msg)

	assert.Equal(t, 1, m.usage["htop.desktop"].Count)
	for _, it := range m.list.Items() {
		ai := it.(appItem)
		if ai.app.ID == "htop.desktop" {
			assert.Contains(t, ai.Description(), "1×")
		}
	}
}

func TestModel_DetailMode(t *testing.T) {
	m, _, _ := newTestModel(t, &fakeLauncher{})

	m = update(t, m, runes("i"))
	assert.Equal(t, ModeDetail, m.mode)
	require.NotNil(t, m.selected)
	assert.Equal(t, "gimp.desktop", m.selected.ID)

	detail := m.renderDetail(m.selected)
	assert.Contains(t, detail, "gimp.desktop")
	assert.Contains(t, detail, "Graphics")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeList, m.mode)
}

func TestModel_HelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t, &fakeLauncher{})

	m = update(t, m, runes("?"))
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = update(t, m, runes("?"))
	assert.Equal(t, ModeList, m.mode)
}

func TestModel_RescanReloads(t *testing.T) {
	m, _, _ := newTestModel(t, &fakeLauncher{})

	_, cmd := m.Update(rescanMsg{})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, catalogMsg{}, msg)
	m = update(t, m, msg)
	assert.Len(t, m.list.Items(), 3)
}

func TestBuildKeybindBar_FitsWidth(t *testing.T) {
	m, _, _ := newTestModel(t, &fakeLauncher{})

	bar := stripANSI(m.buildKeybindBar(20, "list"))
	assert.LessOrEqual(t, len(bar), 20)
	assert.Contains(t, bar, "q quit")
}

func TestDetectClipboardCommand(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TUI.Clipboard = "custom-copy"
	assert.Equal(t, "custom-copy", detectClipboardCommand(cfg, nil))

	onlyXclip := func(name string) (string, error) {
		if name == "xclip" {
			return "/usr/bin/xclip", nil
		}
		return "", errors.New("not found")
	}
	assert.Equal(t, "xclip -selection clipboard", detectClipboardCommand(nil, onlyXclip))

	none := func(string) (string, error) { return "", errors.New("not found") }
	assert.Empty(t, detectClipboardCommand(nil, none))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
	assert.Equal(t, "ünic…", clip("ünicode", 5))
}
