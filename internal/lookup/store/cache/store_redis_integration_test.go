//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"mymyunsw/internal/lookup/metrics"
	"mymyunsw/internal/lookup/models"
	"mymyunsw/internal/lookup/store/cache"
	"mymyunsw/internal/lookup/store/memory"
	"mymyunsw/pkg/domain"
	"mymyunsw/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	source  *memory.InMemoryStore
	metrics *metrics.Metrics
	cache   *cache.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.source = memory.New()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.cache = cache.NewRedisCache(s.redis.Client, s.source, 5*time.Minute, cache.WithMetrics(s.metrics))
}

func (s *RedisCacheSuite) TestFoundRecordIsServedFromCache() {
	ctx := context.Background()
	s.source.AddStudent(models.StudentRecord{ID: 1, ZID: "1234567", FamilyName: "Smith", GivenNames: "Jo"})

	first, ok, err := s.cache.GetStudent(ctx, "1234567")
	s.Require().NoError(err)
	s.True(ok)

	// Replace the source so a second read can only match through the cache.
	s.source.AddStudent(models.StudentRecord{ID: 1, ZID: "1234567", FamilyName: "Changed"})

	second, ok, err := s.cache.GetStudent(ctx, "1234567")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(first, second)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheResult.WithLabelValues("student", "hit")))

	ttl, err := s.redis.Client.TTL(ctx, cache.Key("student", "1234567")).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisCacheSuite) TestAbsenceIsNotCached() {
	ctx := context.Background()

	_, ok, err := s.cache.GetProgram(ctx, domain.ProgramCode("3778"))
	s.Require().NoError(err)
	s.False(ok)

	n, err := s.redis.Client.Exists(ctx, cache.Key("program", "3778")).Result()
	s.Require().NoError(err)
	s.Zero(n)

	s.source.AddProgram(models.ProgramRecord{ID: 10, Code: "3778", Name: "Computer Science"})
	prog, ok, err := s.cache.GetProgram(ctx, domain.ProgramCode("3778"))
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("Computer Science", prog.Name)
}

func (s *RedisCacheSuite) TestUndecodableEntryFallsBackToSource() {
	ctx := context.Background()
	s.source.AddStream(models.StreamRecord{ID: 20, Code: "COMPA1", Name: "Computer Science"})
	s.Require().NoError(s.redis.Client.Set(ctx, cache.Key("stream", "COMPA1"), "{not json", time.Minute).Err())

	strm, ok, err := s.cache.GetStream(ctx, domain.StreamCode("COMPA1"))
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(int64(20), strm.ID)
}
