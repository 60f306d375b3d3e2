package core

import (
	"sort"
	"strings"

	"github.com/jmylchreest/tilemenu/internal/category"
	"github.com/jmylchreest/tilemenu/internal/model"
)

// Group places every application in the section of each top-level bucket it
// maps to. Sections are labelled from table, ordered by label with Other
// last, and list their applications by display name.
func Group(apps []*model.Application, table category.Table) []model.Section {
	byID := make(map[string]*model.Section)
	var order []string

	for _, a := range apps {
		for _, b := range a.Buckets() {
			sec, ok := byID[b]
			if !ok {
				sec = &model.Section{ID: b, Label: table.Label(b)}
				byID[b] = sec
				order = append(order, b)
			}
			sec.Apps = append(sec.Apps, a)
		}
	}

	sections := make([]model.Section, 0, len(order))
	for _, id := range order {
		sec := byID[id]
		sort.SliceStable(sec.Apps, func(i, j int) bool {
			return strings.ToLower(sec.Apps[i].DisplayName()) < strings.ToLower(sec.Apps[j].DisplayName())
		})
		sections = append(sections, *sec)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		a, b := sections[i], sections[j]
		if (a.ID == category.Other) != (b.ID == category.Other) {
			return b.ID == category.Other
		}
		return strings.ToLower(a.Label) < strings.ToLower(b.Label)
	})
	return sections
}

// FindSection returns the section with the given id or label, or nil.
func FindSection(sections []model.Section, key string) *model.Section {
	for i := range sections {
		if sections[i].ID == key || strings.EqualFold(sections[i].Label, key) {
			return &sections[i]
		}
	}
	return nil
}
