package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mymyunsw/internal/lookup/models"
	"mymyunsw/pkg/domain"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.AddStudent(models.StudentRecord{ID: 1, ZID: "1234567", FamilyName: "Smith"})
	store.AddProgram(models.ProgramRecord{ID: 2, Code: "3778", Name: "Computer Science"})
	store.AddStream(models.StreamRecord{ID: 3, Code: "COMPA1", Name: "Computer Science"})

	t.Run("known keys are found", func(t *testing.T) {
		stu, ok, err := store.GetStudent(ctx, "1234567")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Smith", stu.FamilyName)

		prog, ok, err := store.GetProgram(ctx, "3778")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(2), prog.ID)

		strm, ok, err := store.GetStream(ctx, "COMPA1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, domain.StreamCode("COMPA1"), strm.Code)
	})

	t.Run("unknown keys are absent, not errors", func(t *testing.T) {
		_, ok, err := store.GetStudent(ctx, "7654321")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.GetProgram(ctx, "0000")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.GetStream(ctx, "NOPE")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := store.GetStudent(cctx, "1234567")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
