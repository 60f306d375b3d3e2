// Package wm detects the running window manager and the geometry of the
// focused output.
package wm

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// WM identifies a window manager family.
type WM string

const (
	Sway    WM = "sway"
	I3      WM = "i3"
	Openbox WM = "openbox"
	Other   WM = "other"
)

// IPC reports whether the WM is queried through swaymsg/i3-msg.
func (w WM) IPC() bool {
	return w == Sway || w == I3
}

// msgCommand returns the CLI used to query the WM.
func (w WM) msgCommand() string {
	if w == Sway {
		return "swaymsg"
	}
	return "i3-msg"
}

// ProbeTimeout bounds each swaymsg/i3-msg call.
const ProbeTimeout = 2 * time.Second

// Runner runs a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Detector detects the window manager from the environment and, failing
// that, by probing the WM message tools.
type Detector struct {
	Getenv func(string) string
	Run    Runner
}

// NewDetector returns a Detector using the process environment.
func NewDetector() *Detector {
	return &Detector{Getenv: os.Getenv, Run: ExecRunner}
}

// Detect returns the running window manager. Checks, in order:
// DESKTOP_SESSION suffix, SWAYSOCK, I3SOCK contents, then whether
// "swaymsg -t get_seats" or "i3-msg -t get_outputs" succeeds.
func (d *Detector) Detect(ctx context.Context) WM {
	getenv := d.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	session := getenv("DESKTOP_SESSION")
	switch {
	case strings.HasSuffix(session, "sway"):
		return Sway
	case strings.HasSuffix(session, "i3"):
		return I3
	case strings.HasSuffix(session, "openbox"):
		return Openbox
	}

	if getenv("SWAYSOCK") != "" {
		return Sway
	}
	if sock := getenv("I3SOCK"); sock != "" {
		if strings.Contains(sock, "sway") {
			return Sway
		}
		if strings.Contains(sock, "i3") {
			return I3
		}
	}

	if d.probe(ctx, "swaymsg", "-t", "get_seats") {
		return Sway
	}
	if d.probe(ctx, "i3-msg", "-t", "get_outputs") {
		return I3
	}
	return Other
}

func (d *Detector) probe(ctx context.Context, name string, args ...string) bool {
	run := d.Run
	if run == nil {
		run = ExecRunner
	}
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()
	_, err := run(ctx, name, args...)
	return err == nil
}
