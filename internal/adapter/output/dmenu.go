package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// DmenuFormatter formats applications one per line for dmenu/rofi/fuzzel.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs(opts)).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes applications in dmenu format (one per line).
func (f *DmenuFormatter) Format(w io.Writer, apps []*model.Application) error {
	for i, a := range apps {
		if _, err := fmt.Fprintln(w, f.formatLine(i+1, a)); err != nil {
			return err
		}
	}
	return nil
}

func (f *DmenuFormatter) formatLine(index int, a *model.Application) string {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, newTemplateData(index, a, f.opts)); err == nil {
			return buf.String()
		}
	}

	// Default format: [index] [section] name[: comment]
	var parts []string
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", index))
	}
	if f.opts.ShowCategory {
		parts = append(parts, f.opts.label(a.PrimaryCategory()))
	}

	content := a.DisplayName()
	if f.opts.ShowComment && a.Comment != "" {
		content += ": " + singleLine(a.Comment, f.opts.CommentLen)
	}
	parts = append(parts, content)

	return strings.Join(parts, sep)
}

// templateData provides data for custom templates.
type templateData struct {
	Index       int
	App         *model.Application
	Name        string
	Section     string
	SectionName string
}

func newTemplateData(index int, a *model.Application, opts FormatterOptions) templateData {
	return templateData{
		Index:       index,
		App:         a,
		Name:        a.DisplayName(),
		Section:     a.PrimaryCategory(),
		SectionName: opts.label(a.PrimaryCategory()),
	}
}

// templateFuncs returns template helper functions.
func templateFuncs(opts FormatterOptions) template.FuncMap {
	return template.FuncMap{
		"truncate": truncate,
		"join":     strings.Join,
		"label":    opts.label,
		"terminalIcon": func(terminal bool) string {
			if terminal {
				return ">_"
			}
			return ""
		},
	}
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// singleLine flattens text for one-line display and truncates it.
func singleLine(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	return truncate(s, maxLen)
}
