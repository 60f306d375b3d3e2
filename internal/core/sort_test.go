package core

import (
	"testing"

	"github.com/jmylchreest/tilemenu/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSort_Empty(t *testing.T) {
	var apps []*model.Application
	Sort(apps, DefaultSortOptions())
	assert.Len(t, apps, 0)
}

func TestSort_ByNameAsc(t *testing.T) {
	apps := []*model.Application{
		{ID: "c", Name: "charlie"},
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "bravo"},
	}
	Sort(apps, DefaultSortOptions())
	assert.Equal(t, []string{"a", "b", "c"}, ids(apps))
}

func TestSort_ByNameDesc(t *testing.T) {
	apps := []*model.Application{
		{ID: "a", Name: "Alpha"},
		{ID: "c", Name: "charlie"},
		{ID: "b", Name: "bravo"},
	}
	Sort(apps, SortOptions{Field: SortByName, Order: SortDesc})
	assert.Equal(t, []string{"c", "b", "a"}, ids(apps))
}

func TestSort_UsesLocalizedName(t *testing.T) {
	apps := []*model.Application{
		{ID: "files", Name: "Files", LocalizedName: "Dateien"},
		{ID: "editor", Name: "Editor"},
	}
	Sort(apps, DefaultSortOptions())
	assert.Equal(t, []string{"files", "editor"}, ids(apps))
}

func TestSort_ByCategory(t *testing.T) {
	apps := []*model.Application{
		{ID: "term", Name: "Term", Categories: []string{"System"}},
		{ID: "web", Name: "Web", Categories: []string{"Network"}},
		{ID: "aaa", Name: "Aaa", Categories: []string{"System"}},
		{ID: "game", Name: "Game", Categories: []string{"ArcadeGame"}},
	}
	Sort(apps, SortOptions{Field: SortByCategory, Order: SortAsc})
	assert.Equal(t, []string{"game", "web", "aaa", "term"}, ids(apps))
}

func TestSort_ByUsageDesc(t *testing.T) {
	apps := []*model.Application{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C"},
		{ID: "d", Name: "D"},
	}
	usage := map[string]int{"b": 5, "c": 9, "d": 5}
	Sort(apps, SortOptions{Field: SortByUsage, Order: SortDesc, Usage: usage})
	assert.Equal(t, []string{"c", "b", "d", "a"}, ids(apps))
}

func TestDefaultSortOptions(t *testing.T) {
	opts := DefaultSortOptions()
	assert.Equal(t, SortByName, opts.Field)
	assert.Equal(t, SortAsc, opts.Order)
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input    string
		expected SortField
	}{
		{"name", SortByName},
		{"n", SortByName},
		{"category", SortByCategory},
		{"cat", SortByCategory},
		{"usage", SortByUsage},
		{"FREQUENCY", SortByUsage},
		{"unknown", SortByName},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseSortField(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected SortOrder
	}{
		{"asc", SortAsc},
		{"ascending", SortAsc},
		{"desc", SortDesc},
		{"D", SortDesc},
		{"unknown", SortAsc},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseSortOrder(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
