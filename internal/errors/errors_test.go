package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("preserves error chain", func(t *testing.T) {
		t.Parallel()
		wrapped := Wrap(ErrCorruptState, "failed to read tasks")
		require.Error(t, wrapped)
		assert.True(t, stderrors.Is(wrapped, ErrCorruptState))
		assert.Equal(t, "failed to read tasks: corrupted state value", wrapped.Error())
	})
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Wrapf(nil, "key %q", "app.tasks"))
	})

	t.Run("formats context", func(t *testing.T) {
		t.Parallel()
		wrapped := Wrapf(ErrEmptyValue, "task %s", "title")
		require.Error(t, wrapped)
		assert.True(t, Is(wrapped, ErrEmptyValue))
		assert.Equal(t, "task title: value cannot be empty", wrapped.Error())
	})
}
