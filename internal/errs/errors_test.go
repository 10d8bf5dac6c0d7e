package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("create %q: %w", "door-lock", ErrRepoCreate)
	assert.True(t, errors.Is(err, ErrRepoCreate))
	assert.False(t, errors.Is(err, ErrPush))
}

func TestCommandError(t *testing.T) {
	inner := errors.New("exit status 128")
	err := &CommandError{
		Binary:   "git",
		Args:     []string{"push", "--force", "origin", "HEAD:main"},
		ExitCode: 128,
		Output:   "  fatal: repository not found\n",
		Err:      inner,
	}

	assert.Equal(t, "git push --force origin HEAD:main failed (exit 128): fatal: repository not found: exit status 128", err.Error())
	assert.True(t, errors.Is(err, inner))

	wrapped := fmt.Errorf("%w: %w", ErrPush, err)
	var cmdErr *CommandError
	assert.True(t, errors.As(wrapped, &cmdErr))
	assert.Equal(t, 128, cmdErr.ExitCode)
	assert.True(t, errors.Is(wrapped, ErrPush))
}
