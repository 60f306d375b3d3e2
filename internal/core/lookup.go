package core

import (
	"strings"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// LookupByID finds an application by its desktop ID. The ".desktop" suffix
// may be omitted. Returns nil if not found.
func LookupByID(apps []*model.Application, id string) *model.Application {
	for _, a := range apps {
		if a.ID == id || a.BaseID() == id {
			return a
		}
	}
	return nil
}

// LookupByIndex finds an application by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(apps []*model.Application, index int) *model.Application {
	idx := index - 1
	if idx < 0 || idx >= len(apps) {
		return nil
	}
	return apps[idx]
}

// LookupByName finds the first application whose name or localized name
// equals name, ignoring case.
func LookupByName(apps []*model.Application, name string) *model.Application {
	for _, a := range apps {
		if strings.EqualFold(a.Name, name) || (a.LocalizedName != "" && strings.EqualFold(a.LocalizedName, name)) {
			return a
		}
	}
	return nil
}

// Search finds applications matching term in name, generic name, comment,
// keywords or Exec. Case-insensitive substring match.
func Search(apps []*model.Application, term string) []*model.Application {
	if term == "" {
		return apps
	}

	var result []*model.Application
	for _, a := range apps {
		if a.Matches(term) {
			result = append(result, a)
		}
	}
	return result
}

// UniqueCategories returns the top-level buckets used by apps, sorted.
func UniqueCategories(apps []*model.Application) []string {
	seen := make(map[string]bool)
	var cats []string

	for _, a := range apps {
		for _, b := range a.Buckets() {
			if !seen[b] {
				seen[b] = true
				cats = append(cats, b)
			}
		}
	}

	sortStrings(cats)
	return cats
}

// sortStrings sorts strings in place (simple insertion sort for small lists).
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && strings.ToLower(s[j]) < strings.ToLower(s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
