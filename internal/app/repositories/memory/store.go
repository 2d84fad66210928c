// Package memory implements repositories.Store on plain maps. It applies the
// same foreign key, cascade and composite key rules as the Postgres schema and
// is selected with database.driver "memory".
package memory

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/repositories"
)

type enrollmentKey struct {
	studentID int64
	courseID  int64
}

// tables is one consistent copy of everything the store holds.
type tables struct {
	trainers    map[int64]models.Trainer
	pokemon     map[int64]models.Pokemon
	students    map[int64]models.Student
	courses     map[int64]models.Course
	enrollments map[enrollmentKey]struct{}

	// last issued id per table; ids are never reused
	seq map[string]int64
}

func newTables() *tables {
	return &tables{
		trainers:    make(map[int64]models.Trainer),
		pokemon:     make(map[int64]models.Pokemon),
		students:    make(map[int64]models.Student),
		courses:     make(map[int64]models.Course),
		enrollments: make(map[enrollmentKey]struct{}),
		seq:         make(map[string]int64),
	}
}

func (t *tables) clone() *tables {
	return &tables{
		trainers:    maps.Clone(t.trainers),
		pokemon:     maps.Clone(t.pokemon),
		students:    maps.Clone(t.students),
		courses:     maps.Clone(t.courses),
		enrollments: maps.Clone(t.enrollments),
		seq:         maps.Clone(t.seq),
	}
}

func (t *tables) nextID(table string) int64 {
	t.seq[table]++
	return t.seq[table]
}

// Store is an in-process repositories.Store. Units of work run one at a time
// against a private copy of the tables, which replaces the live tables only
// when the unit of work succeeds.
type Store struct {
	mu   sync.Mutex
	data *tables
}

var _ repositories.Store = (*Store)(nil)

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{data: newTables()}
}

// WithinTransaction implements repositories.Store. A returned error or a panic
// discards every change fn made.
func (s *Store) WithinTransaction(ctx context.Context, fn repositories.UnitOfWorkFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	repos := &repositories.Repositories{
		Trainers:    &trainerRepository{t: work},
		Pokemon:     &pokemonRepository{t: work},
		Students:    &studentRepository{t: work},
		Courses:     &courseRepository{t: work},
		Enrollments: &enrollmentRepository{t: work},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.data = work
	return nil
}

// sortedValues returns the map values ordered by key.
func sortedValues[V any](m map[int64]V) []V {
	keys := slices.Sorted(maps.Keys(m))
	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}
	return values
}

func containsFold(s, substr string) bool {
	substr = strings.TrimSpace(substr)
	return substr == "" || strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
