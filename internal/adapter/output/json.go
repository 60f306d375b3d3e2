package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// JSONFormatter formats applications as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes applications as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, apps []*model.Application) error {
	if apps == nil {
		apps = []*model.Application{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(apps)
}

// FormatSingle writes a single application as JSON.
func (f *JSONFormatter) FormatSingle(w io.Writer, a *model.Application) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(a)
}

// YAMLFormatter formats applications as a YAML sequence.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes applications as YAML.
func (f *YAMLFormatter) Format(w io.Writer, apps []*model.Application) error {
	if apps == nil {
		apps = []*model.Application{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(apps); err != nil {
		return err
	}
	return enc.Close()
}
