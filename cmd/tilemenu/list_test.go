package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/tilemenu/internal/category"
)

func TestResolveCategory(t *testing.T) {
	table := category.Table{
		"WebBrowser": "Web Browser",
		"Network":    "Netzwerk",
		"Game":       "Spiele",
		"Other":      "Other",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"top-level id", "Network", "Network"},
		{"localized label", "netzwerk", "Network"},
		{"game label", "Spiele", "Game"},
		{"sub-category id", "WebBrowser", "Network"},
		{"sub-category label", "web browser", "Network"},
		{"sub-category missing from table", "Shooter", "Game"},
		{"unknown", "Nonsense", "Nonsense"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveCategory(tt.in, table))
		})
	}
}
