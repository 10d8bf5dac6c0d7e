// Package errs defines the sentinel errors that classify per-project failures.
// Callers wrap them with fmt.Errorf("...: %w") and test with errors.Is.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSketch indicates a project folder holds no sketch file.
	ErrNoSketch = errors.New("no sketch file found")

	// ErrEmptyName indicates the generated name sanitized to nothing.
	ErrEmptyName = errors.New("generated repository name is empty")

	// ErrGeneration indicates the text generation service failed.
	ErrGeneration = errors.New("text generation failed")

	// ErrRepoCreate indicates the hosting API refused to create a repository.
	ErrRepoCreate = errors.New("repository creation failed")

	// ErrPush indicates a git step of the push failed.
	ErrPush = errors.New("git push failed")
)

// CommandError describes a failed external command.
// Output is expected to be redacted by the producer.
type CommandError struct {
	Binary   string
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Binary, strings.Join(e.Args, " "))
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, out)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}
