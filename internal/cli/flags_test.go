package cli

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tasksync/tasksync/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidOutputFormat(OutputText))
	assert.True(t, IsValidOutputFormat(OutputJSON))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", stderrors.New("boom"), ExitError},
		{"invalid output format", fmt.Errorf("bad: %w", errors.ErrInvalidOutputFormat), ExitInvalidInput},
		{"unknown flag", stderrors.New("unknown flag: --frobnicate"), ExitInvalidInput},
		{"unknown command", stderrors.New(`unknown command "frob" for "tasksync"`), ExitInvalidInput},
		{"lock timeout", errors.Wrap(errors.ErrLockTimeout, "state"), ExitError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestRootRejectsInvalidOutputFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "current", "--output", "xml")
	assert.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestVerboseQuietMutuallyExclusive(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "current", "--verbose", "--quiet")
	assert.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}
