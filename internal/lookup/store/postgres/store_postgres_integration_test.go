//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"mymyunsw/internal/lookup/store/postgres"
	platformpg "mymyunsw/internal/platform/postgres"
	"mymyunsw/pkg/domain"
	"mymyunsw/pkg/platform/tx"
	"mymyunsw/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = postgres.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "students", "people", "streams", "programs")
	s.Require().NoError(err)

	_, err = s.postgres.DB.ExecContext(ctx, `
		INSERT INTO people (id, zid, family_name, given_names) VALUES
			(1, 1234567, 'Smith', 'Jo'),
			(2, 7654321, 'Staff', NULL),
			(3, 5555555, 'Nguyen', NULL);
		INSERT INTO students (id) VALUES (1), (3);
		INSERT INTO programs (id, code, name) VALUES (10, '3778', 'Computer Science');
		INSERT INTO streams (id, code, name) VALUES (20, 'COMPA1', 'Computer Science');
	`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestGetStudent() {
	ctx := context.Background()

	s.Run("student is found by zid", func() {
		rec, ok, err := s.store.GetStudent(ctx, domain.ZID("1234567"))
		s.Require().NoError(err)
		s.True(ok)
		s.Equal(int64(1), rec.ID)
		s.Equal(domain.ZID("1234567"), rec.ZID)
		s.Equal("Jo Smith", rec.FullName())
	})

	s.Run("null given names scan as empty", func() {
		rec, ok, err := s.store.GetStudent(ctx, domain.ZID("5555555"))
		s.Require().NoError(err)
		s.True(ok)
		s.Empty(rec.GivenNames)
	})

	s.Run("person who is not a student is absent", func() {
		_, ok, err := s.store.GetStudent(ctx, domain.ZID("7654321"))
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("unknown zid is absent", func() {
		_, ok, err := s.store.GetStudent(ctx, domain.ZID("0000000"))
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *PostgresStoreSuite) TestGetProgramAndStream() {
	ctx := context.Background()

	prog, ok, err := s.store.GetProgram(ctx, domain.ProgramCode("3778"))
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("Computer Science", prog.Name)

	_, ok, err = s.store.GetProgram(ctx, domain.ProgramCode("9999"))
	s.Require().NoError(err)
	s.False(ok)

	strm, ok, err := s.store.GetStream(ctx, domain.StreamCode("COMPA1"))
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(int64(20), strm.ID)

	_, ok, err = s.store.GetStream(ctx, domain.StreamCode("NOPE"))
	s.Require().NoError(err)
	s.False(ok)
}

func (s *PostgresStoreSuite) TestCancelledContextFails() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.store.GetStudent(ctx, domain.ZID("1234567"))
	s.Error(err)
}

func (s *PostgresStoreSuite) TestLookupsJoinReadOnlySnapshot() {
	ctx := context.Background()
	session := platformpg.NewSession(s.postgres.DB)

	err := session.ReadOnly(ctx, func(ctx context.Context) error {
		t, ok := tx.From(ctx)
		s.Require().True(ok)

		_, found, err := s.store.GetStudent(ctx, domain.ZID("1234567"))
		s.Require().NoError(err)
		s.True(found)

		_, err = t.ExecContext(ctx, `INSERT INTO programs (id, code, name) VALUES (11, '0000', 'x')`)
		s.Error(err, "writes must fail inside the read-only snapshot")
		return nil
	})
	s.Require().NoError(err)

	_, found, err := s.store.GetProgram(ctx, domain.ProgramCode("0000"))
	s.Require().NoError(err)
	s.False(found)
}
