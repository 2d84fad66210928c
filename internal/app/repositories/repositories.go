package repositories

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/db"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TrainerRepository persists trainers.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *models.Trainer) error
	GetByID(ctx context.Context, id int64) (*models.Trainer, error)
	List(ctx context.Context, filter models.TrainerFilter) ([]*models.Trainer, error)
	Update(ctx context.Context, trainer *models.Trainer) error
	// Delete removes the trainer and, through the foreign key cascade, its pokemon.
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// PokemonRepository persists pokemon. Reads return the owning trainer loaded.
type PokemonRepository interface {
	Create(ctx context.Context, pokemon *models.Pokemon) error
	GetByID(ctx context.Context, id int64) (*models.Pokemon, error)
	List(ctx context.Context, filter models.PokemonFilter) ([]*models.Pokemon, error)
	ListByTrainerID(ctx context.Context, trainerID int64) ([]*models.Pokemon, error)
	CountByTrainerIDs(ctx context.Context, trainerIDs []int64) (map[int64]int, error)
	Update(ctx context.Context, pokemon *models.Pokemon) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository persists students.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	List(ctx context.Context) ([]*models.Student, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// CourseRepository persists courses.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// EnrollmentRepository persists the student/course join records.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Get(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	List(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error)
	Delete(ctx context.Context, studentID, courseID int64) error
}

// Repositories holds all the repository instances of one unit of work
type Repositories struct {
	Trainers    TrainerRepository
	Pokemon     PokemonRepository
	Students    StudentRepository
	Courses     CourseRepository
	Enrollments EnrollmentRepository
}

// NewRepositories initializes all Postgres repositories on top of db
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Trainers:    NewTrainerRepository(db),
		Pokemon:     NewPokemonRepository(db),
		Students:    NewStudentRepository(db),
		Courses:     NewCourseRepository(db),
		Enrollments: NewEnrollmentRepository(db),
	}
}

// UnitOfWorkFn receives the repositories bound to a single transaction.
type UnitOfWorkFn func(ctx context.Context, repos *Repositories) error

// Store hands out units of work. Each call to WithinTransaction gets its own
// transaction, committed when fn returns nil and rolled back otherwise.
type Store interface {
	WithinTransaction(ctx context.Context, fn UnitOfWorkFn) error
}

// PostgresStore is the Store backed by a pgx pool.
type PostgresStore struct {
	db db.Beginner
}

// NewPostgresStore creates a Store that opens transactions on b.
func NewPostgresStore(b db.Beginner) *PostgresStore {
	return &PostgresStore{db: b}
}

// WithinTransaction implements Store.
func (s *PostgresStore) WithinTransaction(ctx context.Context, fn UnitOfWorkFn) error {
	return db.WithTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}

// statementBuilder returns the squirrel builder used by every repository.
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE pattern matching s literally anywhere
// in the column. Postgres treats backslash as the default LIKE escape.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
