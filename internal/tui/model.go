// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tilemenu/internal/category"
	"github.com/jmylchreest/tilemenu/internal/config"
	"github.com/jmylchreest/tilemenu/internal/core"
	"github.com/jmylchreest/tilemenu/internal/desktop"
	"github.com/jmylchreest/tilemenu/internal/model"
	"github.com/jmylchreest/tilemenu/internal/store"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeSearch
	ModeHelp
)

// pinnedLabel heads the pinned entries shown before the sections.
const pinnedLabel = "Pinned"

const launchTimeout = 10 * time.Second

// Launcher starts an application.
type Launcher interface {
	Start(ctx context.Context, app *model.Application) error
}

// Catalog is the result of a scan: the applications and the labels of
// their sections.
type Catalog struct {
	Apps  []*model.Application
	Table category.Table
}

// Loader scans the desktop entries. It is called on start and on rescans.
type Loader func() Catalog

// Model is the main TUI model.
type Model struct {
	cfg      *config.Config
	history  *store.History
	pins     *store.PinFile
	launcher Launcher
	load     Loader
	desktops []string

	mode Mode

	list        list.Model
	viewport    viewport.Model
	searchInput textinput.Model
	help        help.Model

	catalog     Catalog
	usage       map[string]store.Usage
	pinned      []string
	selected    *model.Application
	searchQuery string
	width       int
	height      int
	ready       bool

	keys KeyMap

	statusMsg string
	statusErr bool

	refreshCh <-chan store.ChangeEvent

	// launched is set once an application has been started.
	launched *model.Application
}

// appItem wraps an application for the list component.
type appItem struct {
	app     *model.Application
	section string
	pinned  bool
	usage   store.Usage
}

func (i appItem) Title() string {
	if i.pinned {
		return "★ " + i.app.DisplayName()
	}
	return i.app.DisplayName()
}

func (i appItem) Description() string {
	parts := []string{i.section}
	if i.app.Comment != "" {
		parts = append(parts, i.app.Comment)
	}
	if i.usage.Count > 0 {
		parts = append(parts, fmt.Sprintf("%d× %s", i.usage.Count,
			humanize.Time(time.Unix(i.usage.LastLaunched, 0))))
	}
	return strings.Join(parts, " · ")
}

func (i appItem) FilterValue() string {
	return i.app.DisplayName()
}

// appDelegate renders pinned entries highlighted.
type appDelegate struct {
	list.DefaultDelegate
}

func newAppDelegate() appDelegate {
	return appDelegate{DefaultDelegate: list.NewDefaultDelegate()}
}

// Render renders a list item. All items share one structure to avoid
// visual glitches when the selection moves.
func (d appDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ai, ok := item.(appItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	isSelected := index == m.Index()
	itemWidth := m.Width() - d.DefaultDelegate.Styles.NormalTitle.GetHorizontalPadding()

	titleStyle := d.DefaultDelegate.Styles.NormalTitle
	descStyle := d.DefaultDelegate.Styles.NormalDesc
	if isSelected {
		titleStyle = d.DefaultDelegate.Styles.SelectedTitle
		descStyle = d.DefaultDelegate.Styles.SelectedDesc
	}
	if ai.pinned {
		titleStyle = titleStyle.Foreground(lipgloss.Color("11"))
	}

	title := clip(ai.Title(), itemWidth)
	desc := clip(ai.Description(), itemWidth)

	fmt.Fprint(w, titleStyle.Render(title))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(desc))
}

// clip truncates s to width runes with an ellipsis.
func clip(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// Options configures the TUI.
type Options struct {
	Config   *config.Config
	History  *store.History
	Pins     *store.PinFile
	Launcher Launcher
	Load     Loader
	// Desktops are the XDG_CURRENT_DESKTOP names used for OnlyShowIn/NotShowIn.
	Desktops []string
}

// New creates a new TUI model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	l := list.New(nil, newAppDelegate(), 0, 0)
	l.Title = "Applications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search or filter (name~term,category=Network)..."
	searchInput.CharLimit = 100

	h := help.New()
	h.ShowAll = true

	m := Model{
		cfg:         cfg,
		history:     opts.History,
		pins:        opts.Pins,
		launcher:    opts.Launcher,
		load:        opts.Load,
		desktops:    opts.Desktops,
		mode:        ModeList,
		list:        l,
		searchInput: searchInput,
		help:        h,
		keys:        DefaultKeyMap(),
		usage:       make(map[string]store.Usage),
	}

	if opts.History != nil {
		m.refreshCh = opts.History.Subscribe()
	}

	return m
}

// Launched returns the application started from the TUI, if any.
func (m Model) Launched() *model.Application {
	return m.launched
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCatalog,
		m.watchForChanges,
	)
}

type catalogMsg struct {
	catalog Catalog
}

// rescanMsg asks for the desktop entries to be scanned again.
type rescanMsg struct{}

type historyChangedMsg struct{}

type launchedMsg struct {
	app *model.Application
	err error
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	what string
	err  error
}

// loadCatalog runs the loader.
func (m Model) loadCatalog() tea.Msg {
	if m.load == nil {
		return catalogMsg{}
	}
	return catalogMsg{catalog: m.load()}
}

// watchForChanges waits for a history change.
func (m Model) watchForChanges() tea.Msg {
	if m.refreshCh == nil {
		return nil
	}
	if _, ok := <-m.refreshCh; !ok {
		return nil
	}
	return historyChangedMsg{}
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		m.viewport.YPosition = 2
		m.help.Width = msg.Width

		return m, nil

	case catalogMsg:
		m.catalog = msg.catalog
		m.refreshUsage()
		m.refreshPins()
		m.list.SetItems(m.buildListItems())
		return m, nil

	case rescanMsg:
		return m, m.loadCatalog

	case historyChangedMsg:
		m.refreshUsage()
		m.list.SetItems(m.buildListItems())
		return m, m.watchForChanges

	case launchedMsg:
		if msg.err != nil {
			return m, status("Launch failed: "+msg.err.Error(), true)
		}
		m.launched = msg.app
		return m, tea.Quit

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied "+msg.what+" to clipboard", false)
	}

	switch m.mode {
	case ModeList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case ModeDetail:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	case ModeSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// q is text while searching.
	if m.mode != ModeSearch || msg.Type == tea.KeyCtrlC {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			if m.mode == ModeHelp {
				m.mode = ModeList
			} else {
				m.mode = ModeHelp
			}
			return m, nil
		}
	}

	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	}

	return m, nil
}

func (m Model) selectedApp() (*model.Application, bool) {
	item, ok := m.list.SelectedItem().(appItem)
	if !ok {
		return nil, false
	}
	return item.app, true
}

// handleListKey handles keys in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Launch):
		if app, ok := m.selectedApp(); ok {
			return m, m.launch(app)
		}
		return m, nil

	case key.Matches(msg, m.keys.Details):
		if app, ok := m.selectedApp(); ok {
			m.selected = app
			m.mode = ModeDetail
			m.viewport.SetContent(m.renderDetail(app))
			m.viewport.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Pin):
		if app, ok := m.selectedApp(); ok {
			return m.togglePin(app)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyExec):
		if app, ok := m.selectedApp(); ok {
			return m, m.copyToClipboard("exec line", desktop.ExpandExec(app))
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyID):
		if app, ok := m.selectedApp(); ok {
			return m, m.copyToClipboard("desktop id", app.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.list.SetItems(m.buildListItems())
		m.mode = ModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Rescan):
		return m, tea.Batch(m.loadCatalog, status("Rescanning desktop entries", false))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleDetailKey handles keys in detail mode.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeList
		m.selected = nil
		return m, nil

	case key.Matches(msg, m.keys.Launch):
		if m.selected != nil {
			return m, m.launch(m.selected)
		}
		return m, nil

	case key.Matches(msg, m.keys.Pin):
		if m.selected != nil {
			return m.togglePin(m.selected)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyExec):
		if m.selected != nil {
			return m, m.copyToClipboard("exec line", desktop.ExpandExec(m.selected))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleSearchKey handles keys in search mode.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.list.SetItems(m.buildListItems())
		return m, nil

	case tea.KeyEnter:
		if app, ok := m.selectedApp(); ok {
			m.searchInput.Blur()
			return m, m.launch(app)
		}
		return m, nil

	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Live filtering: rebuild the list on each keystroke.
	m.searchQuery = m.searchInput.Value()
	m.list.SetItems(m.buildListItems())

	return m, cmd
}

// launch starts app and records the launch in the history.
func (m Model) launch(app *model.Application) tea.Cmd {
	launcher := m.launcher
	history := m.history
	return func() tea.Msg {
		if launcher == nil {
			return launchedMsg{app: app, err: errors.New("no launcher configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), launchTimeout)
		defer cancel()

		if err := launcher.Start(ctx, app); err != nil {
			return launchedMsg{app: app, err: err}
		}
		if history != nil {
			if _, err := history.Record(app); err != nil {
				slog.Warn("failed to record launch", "id", app.ID, "error", err)
			}
		}
		return launchedMsg{app: app}
	}
}

func (m Model) togglePin(app *model.Application) (tea.Model, tea.Cmd) {
	if m.pins == nil {
		return m, status("Pinning is not available", true)
	}
	pinned, err := m.pins.Toggle(app.ID)
	if err != nil {
		return m, status("Pin failed: "+err.Error(), true)
	}
	m.refreshPins()
	m.list.SetItems(m.buildListItems())
	if pinned {
		return m, status("Pinned "+app.DisplayName(), false)
	}
	return m, status("Unpinned "+app.DisplayName(), false)
}

func (m *Model) refreshUsage() {
	m.usage = make(map[string]store.Usage)
	if m.history == nil {
		return
	}
	for _, u := range m.history.Usage() {
		m.usage[u.DesktopID] = u
	}
}

func (m *Model) refreshPins() {
	if m.pins == nil {
		return
	}
	ids, err := m.pins.Load()
	if err != nil {
		slog.Warn("failed to load pins", "error", err)
		return
	}
	m.pinned = ids
}

// visibleApps applies visibility rules and the search query.
func (m Model) visibleApps() []*model.Application {
	apps := core.Filter(m.catalog.Apps, core.FilterOptions{
		Desktops:   m.desktops,
		ShowHidden: m.cfg.Menu.ShowHidden,
	})

	if m.searchQuery == "" {
		return apps
	}
	if isFilterExpression(m.searchQuery) {
		expr, err := core.ParseFilter(m.searchQuery)
		if err == nil {
			return core.FilterWithExpr(apps, expr)
		}
	}
	return core.Search(apps, m.searchQuery)
}

// buildListItems lays out pinned entries first, then every section.
func (m Model) buildListItems() []list.Item {
	apps := m.visibleApps()
	var items []list.Item

	isPinned := make(map[string]bool, len(m.pinned))
	for _, id := range m.pinned {
		isPinned[id] = true
	}

	if m.cfg.Menu.ShowPinned {
		for _, id := range m.pinned {
			if a := core.LookupByID(apps, id); a != nil {
				items = append(items, appItem{app: a, section: pinnedLabel, pinned: true, usage: m.usage[a.ID]})
			}
		}
	}

	for _, sec := range core.Group(apps, m.catalog.Table) {
		for _, a := range sec.Apps {
			items = append(items, appItem{app: a, section: sec.Label, pinned: isPinned[a.ID], usage: m.usage[a.ID]})
		}
	}
	return items
}

// isFilterExpression reports whether query parses as a filter expression
// rather than plain search text.
func isFilterExpression(query string) bool {
	if !strings.ContainsAny(query, "=~") {
		return false
	}
	expr, err := core.ParseFilter(query)
	return err == nil && len(expr.Conditions) > 0
}

// renderDetail renders the detail view for an application.
func (m Model) renderDetail(a *model.Application) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	var sb strings.Builder
	field := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(labelStyle.Render(label+": ") + value + "\n")
	}

	sb.WriteString(headerStyle.Render(a.DisplayName()) + "\n\n")

	field("Desktop ID", a.ID)
	field("File", a.Path)
	field("Generic name", a.GenericName)
	field("Comment", a.Comment)
	field("Exec", a.Exec)
	field("Command", desktop.ExpandExec(a))
	field("Working dir", a.WorkDir)
	field("Icon", a.Icon)
	field("Terminal", fmt.Sprintf("%t", a.Terminal))
	field("D-Bus activatable", fmt.Sprintf("%t", a.DBusActivatable))
	field("Categories", strings.Join(a.Categories, ", "))

	labels := make([]string, 0, len(a.Buckets()))
	for _, b := range a.Buckets() {
		labels = append(labels, m.catalog.Table.Label(b))
	}
	field("Sections", strings.Join(labels, ", "))
	field("Keywords", strings.Join(a.Keywords, ", "))
	field("Only shown in", strings.Join(a.OnlyShowIn, ", "))
	field("Not shown in", strings.Join(a.NotShowIn, ", "))

	if u, ok := m.usage[a.ID]; ok && u.Count > 0 {
		sb.WriteString("\n")
		field("Launches", humanize.Comma(int64(u.Count)))
		field("Last launched", humanize.Time(time.Unix(u.LastLaunched, 0)))
	}

	return sb.String()
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(what, text string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		return copyResultMsg{what: what, err: copyText(text, cfg)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeList:
		return m.viewList()
	case ModeDetail:
		return m.viewDetail()
	case ModeSearch:
		return m.viewSearch()
	case ModeHelp:
		return m.viewHelp()
	default:
		return ""
	}
}

func (m Model) viewList() string {
	s := m.list.View()

	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += "\n" + statusStyle.Render(m.statusMsg)
	} else {
		s += "\n" + m.buildKeybindBar(m.width, "list")
	}

	return s
}

func (m Model) viewDetail() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Render("Application Detail")

	return header + "\n" + m.viewport.View() + "\n" + m.buildKeybindBar(m.width, "detail")
}

func (m Model) viewSearch() string {
	countStr := fmt.Sprintf("(%d matches)", len(m.list.Items()))

	searchBar := "Search: " + m.searchInput.View() + " " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(countStr)

	return searchBar + "\n" + m.list.View() + "\n" + m.buildKeybindBar(m.width, "search")
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"
	s += m.help.View(m.keys) + "\n\n"

	s += lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Search accepts plain text or filters such as category=Network,terminal=true\n" +
			"Press ? or esc to return")

	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "list", "detail", "search"
func (m Model) buildKeybindBar(width int, mode string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var binds []keybind

	switch mode {
	case "list":
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "launch", 2},
			{"?", "help", 3},
			{"/", "search", 4},
			{"p", "pin", 5},
			{"i", "details", 6},
			{"r", "rescan", 7},
			{"c", "copy exec", 8},
		}
	case "detail":
		binds = []keybind{
			{"q", "quit", 1},
			{"esc", "back", 2},
			{"enter", "launch", 3},
			{"p", "pin", 4},
			{"c", "copy exec", 5},
			{"j/k", "scroll", 6},
		}
	case "search":
		binds = []keybind{
			{"enter", "launch", 1},
			{"esc", "close", 2},
			{"↑/↓", "navigate", 3},
		}
	}

	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		plainItem := b.key + " " + b.desc
		testLen := len(plainItem)
		if result != "" {
			testLen = len(stripANSI(result)) + len(separator) + len(plainItem)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// stripANSI removes ANSI escape codes for length calculation.
func stripANSI(s string) string {
	result := make([]byte, 0, len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result = append(result, s[i])
	}
	return string(result)
}

// RunOptions configures Run.
type RunOptions struct {
	Options
	// HistoryPath is watched so launches from other processes show up.
	HistoryPath string
	// WatchDirs are desktop entry trees watched for automatic rescans.
	WatchDirs []string
}

// Run starts the TUI and returns the application launched from it, if any.
func Run(opts RunOptions) (*model.Application, error) {
	m := New(opts.Options)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if opts.History != nil && opts.HistoryPath != "" {
		hw, err := store.NewHistoryWatcher(opts.History, opts.HistoryPath)
		if err != nil {
			slog.Warn("failed to create history watcher", "error", err)
		} else {
			if err := hw.Start(); err != nil {
				slog.Warn("failed to start history watcher", "error", err)
			}
			defer func() { _ = hw.Stop() }()
		}
	}

	if len(opts.WatchDirs) > 0 {
		dw, err := desktop.NewWatcher(func() { p.Send(rescanMsg{}) })
		if err != nil {
			slog.Warn("failed to create desktop entry watcher", "error", err)
		} else {
			if err := dw.Start(opts.WatchDirs); err != nil {
				slog.Warn("failed to start desktop entry watcher", "error", err)
			}
			defer func() { _ = dw.Close() }()
		}
	}

	final, err := p.Run()
	fm, ok := final.(Model)
	if !ok {
		return nil, err
	}
	if opts.History != nil && fm.refreshCh != nil {
		opts.History.Unsubscribe(fm.refreshCh)
	}
	return fm.Launched(), err
}
