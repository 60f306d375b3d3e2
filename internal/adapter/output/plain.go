package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// PlainFormatter formats applications as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs(opts)).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes applications as plain text.
func (f *PlainFormatter) Format(w io.Writer, apps []*model.Application) error {
	for i, a := range apps {
		if err := f.formatApplication(w, i+1, a); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatApplication(w io.Writer, index int, a *model.Application) error {
	if f.template != nil {
		return f.template.Execute(w, newTemplateData(index, a, f.opts))
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}

	sb.WriteString(a.DisplayName())

	if f.opts.ShowCategory {
		sb.WriteString(fmt.Sprintf(" <%s>", f.opts.label(a.PrimaryCategory())))
	}
	sb.WriteString(fmt.Sprintf(" (%s)\n", a.ID))

	if a.Comment != "" && f.opts.ShowComment {
		sb.WriteString("    " + singleLine(a.Comment, f.opts.CommentLen) + "\n")
	}
	if a.Exec != "" {
		sb.WriteString("    exec: " + a.Exec + "\n")
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}

// FormatField outputs a specific field from an application.
func FormatField(a *model.Application, field string) string {
	switch strings.ToLower(field) {
	case "id", "desktop_id":
		return a.ID
	case "name":
		return a.DisplayName()
	case "generic_name", "genericname":
		return a.GenericName
	case "comment":
		return a.Comment
	case "exec", "command":
		return a.Exec
	case "icon":
		return a.Icon
	case "path", "file":
		return a.Path
	case "category", "section":
		return a.PrimaryCategory()
	case "categories":
		return strings.Join(a.Categories, ";")
	default:
		return a.DisplayName()
	}
}
