package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/trainerapi/internal/app/models"
)

// PgStudentRepository handles student database operations
type PgStudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new PgStudentRepository
func NewStudentRepository(db DBTX) *PgStudentRepository {
	return &PgStudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a student and sets its ID
func (r *PgStudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name").
		Values(student.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return storageError("build create student query", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID); err != nil {
		return storageError("create student", err)
	}
	return nil
}

// List retrieves all students ordered by ID
func (r *PgStudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("students").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, storageError("build list students query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError("list students", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(&student.ID, &student.Name); err != nil {
			return nil, storageError("scan student row", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterate student rows", err)
	}
	return students, nil
}

// Exists reports whether a student with the given ID exists
func (r *PgStudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, r.sb, "students", squirrel.Eq{"id": id})
}
