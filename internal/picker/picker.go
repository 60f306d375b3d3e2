package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrCancelled is returned when the user dismisses the picker.
var ErrCancelled = errors.New("cancelled")

// Chooser presents lines and returns the chosen one.
type Chooser interface {
	Choose(ctx context.Context, lines []string, prompt string) (string, error)
}

// Runner runs a picker program with stdin and returns its stdout.
type Runner func(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)

// Picker runs a dmenu-compatible program.
type Picker struct {
	Program string   // program name or path
	Args    []string // extra args appended after the program defaults

	run Runner
}

// New creates a Picker for program, auto-detecting one when empty.
func New(program string, args []string) (*Picker, error) {
	if program == "" {
		var err error
		program, err = Detect()
		if err != nil {
			return nil, err
		}
		slog.Debug("auto-detected picker program", "program", program)
	} else if _, err := exec.LookPath(program); err != nil {
		return nil, fmt.Errorf("picker program %q not found: %w", program, err)
	}

	return &Picker{Program: program, Args: args, run: execRunner}, nil
}

// Choose shows lines and returns the selection with surrounding whitespace
// removed. Exit status 1 or an empty selection yields ErrCancelled.
func (p *Picker) Choose(ctx context.Context, lines []string, prompt string) (string, error) {
	args := p.buildArgs(prompt)
	slog.Debug("running picker", "program", p.Program, "args", args, "lines", len(lines))

	run := p.run
	if run == nil {
		run = execRunner
	}
	out, err := run(ctx, strings.NewReader(strings.Join(lines, "\n")), p.Program, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("%s failed: %w", p.Program, err)
	}

	selected := strings.TrimSpace(string(out))
	if selected == "" {
		return "", ErrCancelled
	}
	return selected, nil
}

// buildArgs builds command-line arguments for the picker program.
func (p *Picker) buildArgs(prompt string) []string {
	var args []string

	switch filepath.Base(p.Program) {
	case "rofi":
		args = []string{"-dmenu", "-p", prompt, "-i"}
	case "wofi":
		args = []string{"--dmenu", "--prompt", prompt, "--insensitive"}
	case "fuzzel":
		args = []string{"--dmenu", "--prompt", prompt + ": "}
	case "bemenu":
		args = []string{"-p", prompt, "-i"}
	case "dmenu":
		args = []string{"-p", prompt, "-i", "-l", "20"}
	default:
		args = []string{"-p", prompt}
	}

	return append(args, p.Args...)
}

func execRunner(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, err
		}
		return nil, fmt.Errorf("%w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
