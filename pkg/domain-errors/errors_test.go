package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	t.Run("new carries code and message", func(t *testing.T) {
		err := New(CodeUsage, "Usage: q3 <zID>")
		assert.True(t, HasCode(err, CodeUsage))
		assert.Equal(t, "Usage: q3 <zID>", err.Error())
	})

	t.Run("wrap keeps the cause reachable", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := Wrap(cause, CodeUnavailable, "database unavailable")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "database unavailable", MessageOf(err))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("wrap nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("resolve: %w", Newf(CodeNotFound, "Invalid stream code %s", "SENGAH"))
		assert.True(t, HasCode(err, CodeNotFound))
		assert.Equal(t, "Invalid stream code SENGAH", MessageOf(err))
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, CodeInternal, CodeOf(err))
		assert.False(t, HasCode(nil, CodeInternal))
		assert.Equal(t, "boom", MessageOf(err))
	})
}
