package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

// PgCourseRepository handles course database operations
type PgCourseRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new PgCourseRepository
func NewCourseRepository(db DBTX) *PgCourseRepository {
	return &PgCourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a course and sets its ID
func (r *PgCourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("title").
		Values(course.Title).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return storageError("build create course query", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		return storageError("create course", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *PgCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "title").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, storageError("build get course query", err)
	}

	course := &models.Course{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Title); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("course", id)
		}
		return nil, storageError("get course", err)
	}
	return course, nil
}

// List retrieves all courses ordered by ID
func (r *PgCourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "title").
		From("courses").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, storageError("build list courses query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError("list courses", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Title); err != nil {
			return nil, storageError("scan course row", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterate course rows", err)
	}
	return courses, nil
}

// Update overwrites the title of a course
func (r *PgCourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("title", course.Title).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return storageError("build update course query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storageError("update course", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("course", course.ID)
	}
	return nil
}

// Delete deletes a course by ID. Its enrollments are removed by the cascade.
func (r *PgCourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return storageError("build delete course query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storageError("delete course", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("course", id)
	}
	return nil
}

// Exists reports whether a course with the given ID exists
func (r *PgCourseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, r.sb, "courses", squirrel.Eq{"id": id})
}
