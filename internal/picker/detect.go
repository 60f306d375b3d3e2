// Package picker drives dmenu-compatible programs to present the
// application menu.
package picker

import (
	"errors"
	"os/exec"
)

// Supported dmenu-compatible programs in order of preference.
var supportedPrograms = []string{
	"rofi",
	"wofi",
	"fuzzel",
	"bemenu",
	"dmenu",
}

// ErrNoProgram is returned when no supported picker is installed.
var ErrNoProgram = errors.New("no dmenu-compatible program found (tried: rofi, wofi, fuzzel, bemenu, dmenu)")

// Detect finds the first available dmenu-compatible program.
func Detect() (string, error) {
	return detect(exec.LookPath)
}

func detect(lookPath func(string) (string, error)) (string, error) {
	for _, prog := range supportedPrograms {
		if path, err := lookPath(prog); err == nil && path != "" {
			return prog, nil
		}
	}
	return "", ErrNoProgram
}

// Supported returns the list of supported dmenu programs.
func Supported() []string {
	out := make([]string, len(supportedPrograms))
	copy(out, supportedPrograms)
	return out
}

// Available returns the supported programs that are currently installed.
func Available() []string {
	var available []string
	for _, prog := range supportedPrograms {
		if path, err := exec.LookPath(prog); err == nil && path != "" {
			available = append(available, prog)
		}
	}
	return available
}
