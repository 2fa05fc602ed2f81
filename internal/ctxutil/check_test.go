package ctxutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tasksync/tasksync/internal/ctxutil"
)

func TestCanceled(t *testing.T) {
	t.Parallel()

	t.Run("live context returns nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ctxutil.Canceled(context.Background()))
	})

	t.Run("canceled context returns error", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, ctxutil.Canceled(ctx), context.Canceled)
	})
}
