package memory

import (
	"context"
	"sync"

	"mymyunsw/internal/lookup/models"
	"mymyunsw/pkg/domain"
)

// InMemoryStore answers lookups from maps. It backs tests and local runs
// without a database.
type InMemoryStore struct {
	mu       sync.RWMutex
	students map[domain.ZID]models.StudentRecord
	programs map[domain.ProgramCode]models.ProgramRecord
	streams  map[domain.StreamCode]models.StreamRecord
}

// New creates an empty store.
func New() *InMemoryStore {
	return &InMemoryStore{
		students: make(map[domain.ZID]models.StudentRecord),
		programs: make(map[domain.ProgramCode]models.ProgramRecord),
		streams:  make(map[domain.StreamCode]models.StreamRecord),
	}
}

// AddStudent stores or replaces a student, keyed by zID.
func (s *InMemoryStore) AddStudent(rec models.StudentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[rec.ZID] = rec
}

// AddProgram stores or replaces a program, keyed by code.
func (s *InMemoryStore) AddProgram(rec models.ProgramRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programs[rec.Code] = rec
}

// AddStream stores or replaces a stream, keyed by code.
func (s *InMemoryStore) AddStream(rec models.StreamRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streams[rec.Code] = rec
}

func (s *InMemoryStore) GetStudent(ctx context.Context, zid domain.ZID) (models.StudentRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.StudentRecord{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.students[zid]
	return rec, ok, nil
}

func (s *InMemoryStore) GetProgram(ctx context.Context, code domain.ProgramCode) (models.ProgramRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.ProgramRecord{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.programs[code]
	return rec, ok, nil
}

func (s *InMemoryStore) GetStream(ctx context.Context, code domain.StreamCode) (models.StreamRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.StreamRecord{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.streams[code]
	return rec, ok, nil
}
