//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// lookupSchema is the slice of the mymyunsw schema the point lookups read.
const lookupSchema = `
CREATE TABLE IF NOT EXISTS people (
	id          integer PRIMARY KEY,
	zid         integer UNIQUE NOT NULL,
	family_name text NOT NULL,
	given_names text
);
CREATE TABLE IF NOT EXISTS students (
	id integer PRIMARY KEY REFERENCES people(id)
);
CREATE TABLE IF NOT EXISTS programs (
	id   integer PRIMARY KEY,
	code char(4) UNIQUE NOT NULL,
	name text NOT NULL
);
CREATE TABLE IF NOT EXISTS streams (
	id   integer PRIMARY KEY,
	code char(6) UNIQUE NOT NULL,
	name text NOT NULL
);
`

// PostgresContainer wraps a testcontainers PostgreSQL instance with the
// lookup schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a new PostgreSQL container.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("mymyunsw"),
		tcpostgres.WithUsername("grader"),
		tcpostgres.WithPassword("grader"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres: %v", err)
	}

	if _, err := db.ExecContext(ctx, lookupSchema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	// Note: no t.Cleanup here; the Manager shares the container across
	// suites and Ryuk removes it.
	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        db,
	}
}

// TruncateTables empties the named tables. Use between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := p.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE %s CASCADE", strings.Join(tables, ", ")))
	return err
}
