package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"mymyunsw/internal/lookup"
	"mymyunsw/internal/lookup/metrics"
	"mymyunsw/internal/lookup/models"
	"mymyunsw/pkg/domain"
)

const keyPrefix = "mymyunsw:lookup:"

// RedisCache is a read-through cache in front of another store. Only found
// records are cached; absence always goes back to the source. Cache failures
// are logged and bypassed so a broken Redis never fails a lookup.
type RedisCache struct {
	client  redis.Cmdable
	inner   lookup.Store
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(c *RedisCache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *RedisCache) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *RedisCache) {
		c.metrics = m
	}
}

// NewRedisCache wraps inner with a cache on client.
func NewRedisCache(client redis.Cmdable, inner lookup.Store, ttl time.Duration, opts ...Option) *RedisCache {
	c := &RedisCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) GetStudent(ctx context.Context, zid domain.ZID) (models.StudentRecord, bool, error) {
	return readThrough(ctx, c, "student", zid.String(), func(ctx context.Context) (models.StudentRecord, bool, error) {
		return c.inner.GetStudent(ctx, zid)
	})
}

func (c *RedisCache) GetProgram(ctx context.Context, code domain.ProgramCode) (models.ProgramRecord, bool, error) {
	return readThrough(ctx, c, "program", code.String(), func(ctx context.Context) (models.ProgramRecord, bool, error) {
		return c.inner.GetProgram(ctx, code)
	})
}

func (c *RedisCache) GetStream(ctx context.Context, code domain.StreamCode) (models.StreamRecord, bool, error) {
	return readThrough(ctx, c, "stream", code.String(), func(ctx context.Context) (models.StreamRecord, bool, error) {
		return c.inner.GetStream(ctx, code)
	})
}

// Key returns the Redis key a record of kind is cached under.
func Key(kind, key string) string {
	return keyPrefix + kind + ":" + key
}

func readThrough[T any](ctx context.Context, c *RedisCache, kind, key string, load func(context.Context) (T, bool, error)) (T, bool, error) {
	var zero T
	cacheKey := Key(kind, key)

	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		var rec T
		jerr := json.Unmarshal(raw, &rec)
		if jerr == nil {
			c.metrics.RecordCacheHit(kind)
			return rec, true, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", cacheKey, "error", jerr)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.WarnContext(ctx, "lookup cache read failed", "key", cacheKey, "error", err)
	}
	c.metrics.RecordCacheMiss(kind)

	rec, found, err := load(ctx)
	if err != nil {
		return zero, false, fmt.Errorf("%s lookup: %w", kind, err)
	}
	if !found {
		return zero, false, nil
	}

	if payload, jerr := json.Marshal(rec); jerr == nil {
		if serr := c.client.Set(ctx, cacheKey, payload, c.ttl).Err(); serr != nil {
			c.logger.WarnContext(ctx, "lookup cache write failed", "key", cacheKey, "error", serr)
		}
	}
	return rec, true, nil
}
