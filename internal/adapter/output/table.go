package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tilemenu/internal/category"
)

// tableEntry is one row of a category table as emitted by FormatTable.
type tableEntry struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// FormatTable writes a category table sorted by id. Plain and dmenu output
// is "id<TAB>label" per line; json and yaml emit a list of id/label pairs.
func FormatTable(w io.Writer, table category.Table, format FormatType) error {
	ids := make([]string, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]tableEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, tableEntry{ID: id, Label: table[id]})
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case FormatIDs:
		for _, e := range entries {
			if _, err := fmt.Fprintln(w, e.ID); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", e.ID, e.Label); err != nil {
				return err
			}
		}
		return nil
	}
}
