// Package postgres owns the single database session each tool invocation
// holds. Both lib/pq ("postgres") and pgx ("pgx") drivers are registered;
// config.Database.Driver picks one.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"mymyunsw/internal/platform/config"
	"mymyunsw/pkg/platform/sentinel"
	"mymyunsw/pkg/platform/tx"
)

// sqlStateTooManyClients is PostgreSQL's too_many_connections condition.
const sqlStateTooManyClients = "53300"

// Session is one process's connection to the database.
type Session struct {
	db *sql.DB
}

// NewSession wraps an already opened pool.
func NewSession(db *sql.DB) *Session {
	return &Session{db: db}
}

// DB exposes the handle stores are built on.
func (s *Session) DB() *sql.DB {
	return s.db
}

// Close releases the session. Closing twice is harmless.
func (s *Session) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ReadOnly runs fn inside a read-only transaction carried on ctx, so every
// lookup fn makes sees one snapshot. The transaction is always rolled back.
// A session without a handle (memory-backed runs) calls fn directly.
func (s *Session) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if s == nil || s.db == nil {
		return fn(ctx)
	}
	t, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer func() { _ = t.Rollback() }()
	return fn(tx.WithTx(ctx, t))
}

// Opener produces a session; tests substitute their own.
type Opener func(ctx context.Context) (*Session, error)

type options struct {
	logger  *slog.Logger
	backoff func(attempt int) time.Duration
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBackoff overrides the wait between "too many clients" retries.
func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(o *options) {
		if fn != nil {
			o.backoff = fn
		}
	}
}

// Open connects to the configured database and pings it. A server that is
// out of connection slots is retried with linear backoff up to
// cfg.ConnectRetries times; any other failure is returned at once.
func Open(ctx context.Context, cfg config.Database, opts ...Option) (*Session, error) {
	o := options{
		logger:  slog.New(slog.DiscardHandler),
		backoff: func(attempt int) time.Duration { return time.Duration(attempt+1) * time.Second },
	}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Name, err)
	}
	db.SetMaxOpenConns(1)

	for attempt := 0; ; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			o.logger.Debug("database session opened", "database", cfg.Name, "driver", cfg.Driver)
			return NewSession(db), nil
		}
		if !IsTooManyClients(err) || attempt >= cfg.ConnectRetries {
			break
		}
		wait := o.backoff(attempt)
		o.logger.Warn("database has too many clients, retrying", "attempt", attempt+1, "wait", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("connect %s: %w", cfg.Name, ctx.Err())
		}
	}

	_ = db.Close()
	if IsTooManyClients(err) {
		err = errors.Join(sentinel.ErrTooManyClients, err)
	}
	return nil, fmt.Errorf("connect %s: %w: %w", cfg.Name, sentinel.ErrUnavailable, err)
}

// Opens returns an Opener bound to cfg.
func Opens(cfg config.Database, opts ...Option) Opener {
	return func(ctx context.Context) (*Session, error) {
		return Open(ctx, cfg, opts...)
	}
}

// WithSession opens a session, runs fn and closes the session on every path.
// A close failure is reported only when fn succeeded.
func WithSession(ctx context.Context, open Opener, fn func(ctx context.Context, s *Session) error) (err error) {
	s, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close session: %w", cerr)
		}
	}()
	return fn(ctx, s)
}

// IsTooManyClients reports whether err is the server refusing a connection
// for lack of slots, as raised by either driver.
func IsTooManyClients(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == sqlStateTooManyClients {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateTooManyClients {
		return true
	}
	return strings.Contains(err.Error(), "too many clients")
}
