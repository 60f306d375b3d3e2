package core

import (
	"sort"
	"strings"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByName     SortField = "name"
	SortByCategory SortField = "category"
	SortByUsage    SortField = "usage"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField      // Field to sort by
	Order SortOrder      // Sort order (asc/desc)
	Usage map[string]int // Launch counts by desktop ID, used by SortByUsage
}

// DefaultSortOptions returns default sort options (alphabetical).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByName,
		Order: SortAsc,
	}
}

// Sort sorts applications in place based on the provided options. Ties fall
// back to the display name so the result is deterministic.
func Sort(apps []*model.Application, opts SortOptions) {
	if len(apps) == 0 {
		return
	}

	sort.SliceStable(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		nameA, nameB := strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName())

		var cmp int
		switch opts.Field {
		case SortByCategory:
			cmp = strings.Compare(a.PrimaryCategory(), b.PrimaryCategory())
		case SortByUsage:
			cmp = opts.Usage[a.ID] - opts.Usage[b.ID]
		}
		if cmp == 0 {
			cmp = strings.Compare(nameA, nameB)
			// Names stay ascending for usage ties regardless of order.
			if opts.Field == SortByUsage {
				return cmp < 0
			}
		}

		if opts.Order == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "n":
		return SortByName, nil
	case "category", "cat", "c":
		return SortByCategory, nil
	case "usage", "frequency", "u":
		return SortByUsage, nil
	default:
		return SortByName, nil
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return SortAsc, nil
	}
}
