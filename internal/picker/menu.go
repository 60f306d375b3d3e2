package picker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// Line prefixes.
const (
	sectionPrefix   = "▸ "
	favouritePrefix = "★ "
	backLine        = "← Back"
)

// ErrNoMatch is returned when the picker returns text that is not one of
// the offered lines.
var ErrNoMatch = errors.New("selection does not match any entry")

// Menu walks the user from sections to an application.
type Menu struct {
	Chooser Chooser
	Prompt  string
}

// Run shows the top-level menu: favourites followed by one line per section.
// Choosing a section opens its application list, which offers a Back line.
func (m *Menu) Run(ctx context.Context, sections []model.Section, favourites []*model.Application) (*model.Application, error) {
	prompt := m.Prompt
	if prompt == "" {
		prompt = "Applications"
	}

	top, topMap := TopLines(sections, favourites)
	for {
		selected, err := m.Chooser.Choose(ctx, top, prompt)
		if err != nil {
			return nil, err
		}

		item, ok := topMap[selected]
		if !ok {
			slog.Debug("selection not found", "selected", selected)
			return nil, ErrNoMatch
		}
		if item.App != nil {
			return item.App, nil
		}

		app, back, err := m.runSection(ctx, item.Section)
		if err != nil {
			return nil, err
		}
		if back {
			continue
		}
		return app, nil
	}
}

func (m *Menu) runSection(ctx context.Context, sec *model.Section) (*model.Application, bool, error) {
	lines, appMap := AppLines(sec.Apps)
	lines = append([]string{backLine}, lines...)

	selected, err := m.Chooser.Choose(ctx, lines, sec.Label)
	if err != nil {
		return nil, false, err
	}
	if selected == backLine {
		return nil, true, nil
	}
	app, ok := appMap[selected]
	if !ok {
		return nil, false, ErrNoMatch
	}
	return app, false, nil
}

// Item is what a top-level line refers to: an application or a section.
type Item struct {
	App     *model.Application
	Section *model.Section
}

// TopLines builds the top-level lines and their lookup map.
func TopLines(sections []model.Section, favourites []*model.Application) ([]string, map[string]Item) {
	lines := make([]string, 0, len(favourites)+len(sections))
	items := make(map[string]Item, cap(lines))

	favLines, favMap := AppLines(favourites)
	for _, l := range favLines {
		line := favouritePrefix + l
		lines = append(lines, line)
		items[line] = Item{App: favMap[l]}
	}
	for i := range sections {
		line := fmt.Sprintf("%s%s (%d)", sectionPrefix, sections[i].Label, len(sections[i].Apps))
		lines = append(lines, line)
		items[line] = Item{Section: &sections[i]}
	}
	return lines, items
}

// AppLines returns one unique line per application. Duplicate display names
// are disambiguated with the desktop ID.
func AppLines(apps []*model.Application) ([]string, map[string]*model.Application) {
	counts := make(map[string]int, len(apps))
	for _, a := range apps {
		counts[a.DisplayName()]++
	}

	lines := make([]string, 0, len(apps))
	m := make(map[string]*model.Application, len(apps))
	for _, a := range apps {
		line := a.DisplayName()
		if counts[line] > 1 {
			line = fmt.Sprintf("%s (%s)", line, a.ID)
		}
		if _, dup := m[line]; dup {
			continue
		}
		lines = append(lines, line)
		m[line] = a
	}
	return lines, m
}
