// Package output provides output formatters for applications and category tables.
package output

import (
	"io"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// Formatter formats applications for output.
type Formatter interface {
	// Format writes formatted applications to the writer.
	Format(w io.Writer, apps []*model.Application) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
	FormatIDs   FormatType = "ids"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatPlain:
		return NewPlainFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter()
	case FormatDmenu:
		fallthrough
	default:
		return NewDmenuFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template     string            // Custom template for dmenu/plain format
	ShowIndex    bool              // Show 1-based index prefix
	ShowCategory bool              // Show the top-level section label
	ShowComment  bool              // Show the comment after the name
	CommentLen   int               // Maximum comment length (0 = unlimited)
	Separator    string            // Field separator for dmenu format
	Labels       map[string]string // Section labels by top-level id (nil = ids)
}

// DefaultFormatterOptions returns sensible defaults for dmenu output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:    true,
		ShowCategory: true,
		ShowComment:  false,
		CommentLen:   60,
		Separator:    " | ",
	}
}

// label resolves a top-level id through opts.Labels.
func (o FormatterOptions) label(id string) string {
	if l, ok := o.Labels[id]; ok && l != "" {
		return l
	}
	return id
}
