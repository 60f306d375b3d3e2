// Package core provides filtering, sorting, grouping and lookup logic.
package core

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual    FilterOp = "="  // Exact match
	FilterOpNotEqual FilterOp = "!=" // Not equal
	FilterOpContains FilterOp = "~"  // Contains substring
	FilterOpRegex    FilterOp = "~=" // Regex match
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // name, id, exec, comment, category, terminal, dbus
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	regex   *regexp.Regexp
	boolVal bool
}

// FilterExpr represents a compound filter expression.
// Multiple conditions are ANDed together.
type FilterExpr struct {
	Conditions []FilterCondition
}

// FilterOptions specifies criteria for filtering applications.
type FilterOptions struct {
	Category   string   // Top-level bucket (empty=any)
	Desktops   []string // XDG_CURRENT_DESKTOP names used for OnlyShowIn/NotShowIn
	ShowHidden bool     // Include NoDisplay and desktop-restricted entries
	Terminal   *bool    // Filter by Terminal= (nil=any)
	IDs        []string // Keep only these desktop IDs (nil=all)
	Limit      int      // Maximum results (0=unlimited)
}

// Filter returns the applications matching opts, preserving order.
func Filter(apps []*model.Application, opts FilterOptions) []*model.Application {
	result := make([]*model.Application, 0, len(apps))

	for _, a := range apps {
		if !opts.ShowHidden && !a.Visible(opts.Desktops) {
			continue
		}
		if opts.Category != "" && !slices.Contains(a.Buckets(), opts.Category) {
			continue
		}
		if opts.Terminal != nil && a.Terminal != *opts.Terminal {
			continue
		}
		if opts.IDs != nil && !slices.Contains(opts.IDs, a.ID) {
			continue
		}
		result = append(result, a)
	}

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result
}

// ParseDuration parses a duration string with extended formats.
// Supports: 48h, 7d, 1w, 0 (no limit)
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if s == "0" || s == "" {
		return 0, nil
	}

	if daysStr, found := strings.CutSuffix(s, "d"); found {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	if weeksStr, found := strings.CutSuffix(s, "w"); found {
		weeks, err := strconv.Atoi(weeksStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}

// ParseFilter parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2"
//
// Supported fields: name, id, exec, comment, category, terminal, dbus
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex)
//
// Examples:
//   - "category=Network" - applications in the Network section
//   - "name~term" - name contains "term"
//   - "exec~=^flatpak " - Exec line matches a regex
//   - "terminal=true" - terminal applications
func ParseFilter(expr string) (*FilterExpr, error) {
	if expr == "" {
		return &FilterExpr{}, nil
	}

	filter := &FilterExpr{
		Conditions: make([]FilterCondition, 0),
	}

	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cond, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	return filter, nil
}

func parseCondition(s string) (FilterCondition, error) {
	// Longest operators first
	operators := []FilterOp{
		FilterOpNotEqual,
		FilterOpRegex,
		FilterOpEqual,
		FilterOpContains,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx > 0 {
			cond := FilterCondition{
				Field:    strings.ToLower(strings.TrimSpace(s[:idx])),
				Operator: op,
				Value:    strings.TrimSpace(s[idx+len(op):]),
			}
			if err := cond.init(); err != nil {
				return FilterCondition{}, err
			}
			return cond, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

// init normalizes the field and pre-parses the value.
func (c *FilterCondition) init() error {
	switch c.Field {
	case "name", "title":
		c.Field = "name"
	case "id", "desktop_id":
		c.Field = "id"
	case "exec", "command":
		c.Field = "exec"
	case "comment", "description":
		c.Field = "comment"
	case "category", "cat":
		c.Field = "category"
	case "terminal":
		c.boolVal = parseBool(c.Value)
	case "dbus", "dbus_activatable":
		c.Field = "dbus"
		c.boolVal = parseBool(c.Value)
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	if c.Operator == FilterOpRegex {
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "y", "t":
		return true
	default:
		return false
	}
}

// Match tests if an application matches every condition.
func (f *FilterExpr) Match(a *model.Application) bool {
	for _, cond := range f.Conditions {
		if !cond.Match(a) {
			return false
		}
	}
	return true
}

// Match tests if an application matches this single condition.
func (c *FilterCondition) Match(a *model.Application) bool {
	switch c.Field {
	case "name":
		return c.matchString(a.Name) || (a.LocalizedName != "" && c.matchString(a.LocalizedName))
	case "id":
		return c.matchString(a.ID)
	case "exec":
		return c.matchString(a.Exec)
	case "comment":
		return c.matchString(a.Comment)
	case "category":
		// A negative match must hold for every bucket.
		if c.Operator == FilterOpNotEqual {
			for _, b := range a.Buckets() {
				if !c.matchString(b) {
					return false
				}
			}
			return true
		}
		for _, b := range a.Buckets() {
			if c.matchString(b) {
				return true
			}
		}
		return false
	case "terminal":
		return c.matchBool(a.Terminal)
	case "dbus":
		return c.matchBool(a.DBusActivatable)
	default:
		return false
	}
}

func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return strings.EqualFold(fieldValue, c.Value)
	case FilterOpNotEqual:
		return !strings.EqualFold(fieldValue, c.Value)
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

func (c *FilterCondition) matchBool(fieldValue bool) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == c.boolVal
	case FilterOpNotEqual:
		return fieldValue != c.boolVal
	default:
		return false
	}
}

// FilterWithExpr filters applications using a filter expression.
func FilterWithExpr(apps []*model.Application, expr *FilterExpr) []*model.Application {
	if expr == nil || len(expr.Conditions) == 0 {
		return apps
	}

	result := make([]*model.Application, 0, len(apps))
	for _, a := range apps {
		if expr.Match(a) {
			result = append(result, a)
		}
	}
	return result
}
