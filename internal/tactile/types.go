// Package tactile runs external commands on the host. Everything inopush
// does to a local repository goes through an Executor so it can be faked.
package tactile

import (
	"context"
	"strings"
	"time"
)

// Command represents a command to be executed.
type Command struct {
	// Binary is the executable to run (e.g., "git").
	Binary string

	// Arguments are the command-line arguments.
	Arguments []string

	// WorkingDirectory is the directory to execute in.
	WorkingDirectory string

	// Environment variables to set (in KEY=VALUE format), added on top of
	// the executor's environment.
	Environment []string

	// Timeout overrides the executor default when positive.
	Timeout time.Duration
}

// CommandString returns the full command as a string (for display/logging).
func (c Command) CommandString() string {
	if len(c.Arguments) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Arguments, " ")
}

// ExecutionResult is the outcome of a command that was started.
type ExecutionResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Combined string

	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration

	// Killed is set when the command hit its timeout or ctx was canceled.
	Killed     bool
	KillReason string

	Truncated bool
}

// Succeeded reports whether the command exited 0 without being killed.
func (r *ExecutionResult) Succeeded() bool {
	return r != nil && !r.Killed && r.ExitCode == 0
}

// Executor runs commands.
// A returned error means the command could not be started at all; a command
// that ran and failed is reported through ExecutionResult.
type Executor interface {
	Execute(ctx context.Context, cmd Command) (*ExecutionResult, error)
}
