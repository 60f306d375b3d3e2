package picker

import (
	"fmt"
	"path/filepath"

	"github.com/jmylchreest/tilemenu/internal/wm"
)

// PlacementArgs sizes the picker window relative to the focused output:
// a third of its width and half its height. Only rofi and wofi accept a
// pixel size; other programs and an empty rect yield nil.
func PlacementArgs(program string, output wm.Rect) []string {
	if output.Empty() {
		return nil
	}
	width := output.Width / 3
	height := output.Height / 2

	switch filepath.Base(program) {
	case "rofi":
		return []string{"-theme-str", fmt.Sprintf("window { width: %dpx; }", width)}
	case "wofi":
		return []string{"--width", fmt.Sprint(width), "--height", fmt.Sprint(height)}
	default:
		return nil
	}
}
