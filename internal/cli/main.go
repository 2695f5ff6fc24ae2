package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"mymyunsw/internal/lookup"
	lookupmetrics "mymyunsw/internal/lookup/metrics"
	"mymyunsw/internal/lookup/store/cache"
	pgstore "mymyunsw/internal/lookup/store/postgres"
	"mymyunsw/internal/platform/config"
	"mymyunsw/internal/platform/logger"
	platformmetrics "mymyunsw/internal/platform/metrics"
	"mymyunsw/internal/platform/postgres"
	"mymyunsw/internal/platform/redis"
	dErrors "mymyunsw/pkg/domain-errors"
)

// Main wires a tool to the configured database and runs it with args
// (program name excluded). It returns the process exit status.
func Main(ctx context.Context, tool Tool, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(getenv)
	if err != nil {
		Report(stdout, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid configuration"))
		return ExitFailure
	}

	log := logger.New(stderr, cfg.LogLevel).With("tool", tool.Name)
	reg := platformmetrics.New(cfg.Metrics.Textfile)
	m := lookupmetrics.New(reg)

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Warn("lookup cache disabled", "error", err)
		rc = nil
	}
	defer func() { _ = rc.Close() }()

	env := &Env{
		Open:     postgres.Opens(cfg.Database, postgres.WithLogger(log)),
		NewStore: StoreFactory(rc, cfg.Redis.CacheTTL, log, m),
		Logger:   log,
		Metrics:  m,
	}

	code := Execute(ctx, NewCommand(tool, env), args, stdout)
	if err := reg.Flush(); err != nil {
		log.Warn("metrics not written", "error", err)
	}
	return code
}

// StoreFactory returns the lookup store builder for a session: the mymyunsw
// tables, fronted by the Redis cache when one is connected.
func StoreFactory(rc *redis.Client, ttl time.Duration, log *slog.Logger, m *lookupmetrics.Metrics) func(*postgres.Session) lookup.Store {
	return func(s *postgres.Session) lookup.Store {
		var store lookup.Store = pgstore.NewPostgres(s.DB())
		if rc == nil {
			return store
		}
		return cache.NewRedisCache(rc.Client, store, ttl, cache.WithLogger(log), cache.WithMetrics(m))
	}
}
