package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mymyunsw/internal/lookup/mocks"
	"mymyunsw/internal/lookup/models"
	"mymyunsw/pkg/domain"
)

// unreachableClient fails every command quickly, standing in for a Redis
// that went away mid-run.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisCache_BypassesBrokenRedis(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockStore(ctrl)
	cache := NewRedisCache(unreachableClient(t), inner, time.Minute)
	ctx := context.Background()

	t.Run("found records come from the source", func(t *testing.T) {
		want := models.StudentRecord{ID: 1, ZID: "1234567"}
		inner.EXPECT().GetStudent(gomock.Any(), domain.ZID("1234567")).Return(want, true, nil)

		got, ok, err := cache.GetStudent(ctx, "1234567")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("absence is passed through", func(t *testing.T) {
		inner.EXPECT().GetProgram(gomock.Any(), domain.ProgramCode("9999")).Return(models.ProgramRecord{}, false, nil)

		_, ok, err := cache.GetProgram(ctx, "9999")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("source errors are wrapped", func(t *testing.T) {
		boom := errors.New("connection reset")
		inner.EXPECT().GetStream(gomock.Any(), domain.StreamCode("COMPA1")).Return(models.StreamRecord{}, false, boom)

		_, ok, err := cache.GetStream(ctx, "COMPA1")
		assert.ErrorIs(t, err, boom)
		assert.False(t, ok)
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "mymyunsw:lookup:stream:COMPA1", Key("stream", "COMPA1"))
}
