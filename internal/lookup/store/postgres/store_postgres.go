package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mymyunsw/internal/lookup/models"
	"mymyunsw/pkg/domain"
	"mymyunsw/pkg/platform/tx"
)

// zid is compared as text so the query works whether the column is integer
// or character typed.
const (
	studentQuery = `
		SELECT p.id, p.zid::text, p.family_name, p.given_names
		FROM students s
		JOIN people p ON p.id = s.id
		WHERE p.zid::text = $1
	`
	programQuery = `SELECT id, code, name FROM programs WHERE code = $1`
	streamQuery  = `SELECT id, code, name FROM streams WHERE code = $1`
)

// PostgresStore answers point lookups from the mymyunsw schema. Lookups join
// the transaction on ctx when there is one.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a store on the session's handle.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetStudent(ctx context.Context, zid domain.ZID) (models.StudentRecord, bool, error) {
	var (
		rec   models.StudentRecord
		raw   string
		given sql.NullString
	)
	err := tx.QuerierFrom(ctx, s.db).QueryRowContext(ctx, studentQuery, zid.String()).Scan(&rec.ID, &raw, &rec.FamilyName, &given)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StudentRecord{}, false, nil
		}
		return models.StudentRecord{}, false, fmt.Errorf("get student: %w", err)
	}
	rec.ZID = domain.ZID(raw)
	rec.GivenNames = given.String
	return rec, true, nil
}

func (s *PostgresStore) GetProgram(ctx context.Context, code domain.ProgramCode) (models.ProgramRecord, bool, error) {
	var (
		rec models.ProgramRecord
		raw string
	)
	err := tx.QuerierFrom(ctx, s.db).QueryRowContext(ctx, programQuery, code.String()).Scan(&rec.ID, &raw, &rec.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ProgramRecord{}, false, nil
		}
		return models.ProgramRecord{}, false, fmt.Errorf("get program: %w", err)
	}
	rec.Code = domain.ProgramCode(raw)
	return rec, true, nil
}

func (s *PostgresStore) GetStream(ctx context.Context, code domain.StreamCode) (models.StreamRecord, bool, error) {
	var (
		rec models.StreamRecord
		raw string
	)
	err := tx.QuerierFrom(ctx, s.db).QueryRowContext(ctx, streamQuery, code.String()).Scan(&rec.ID, &raw, &rec.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StreamRecord{}, false, nil
		}
		return models.StreamRecord{}, false, fmt.Errorf("get stream: %w", err)
	}
	rec.Code = domain.StreamCode(raw)
	return rec, true, nil
}
