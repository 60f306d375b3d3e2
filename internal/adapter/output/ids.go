package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// IDsFormatter outputs just the desktop IDs, one per line.
// Useful for piping to other commands (e.g., xargs tilemenu launch).
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes desktop IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, apps []*model.Application) error {
	for _, a := range apps {
		if _, err := fmt.Fprintln(w, a.ID); err != nil {
			return err
		}
	}
	return nil
}
