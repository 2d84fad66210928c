package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
	"github.com/yigit/trainerapi/internal/pkg/dberrors"
)

// Foreign key constraints on enrollments, as named by the init migration.
const (
	enrollmentStudentFK = "enrollments_student_id_fkey"
	enrollmentCourseFK  = "enrollments_course_id_fkey"
)

// PgEnrollmentRepository handles enrollment database operations
type PgEnrollmentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new PgEnrollmentRepository
func NewEnrollmentRepository(db DBTX) *PgEnrollmentRepository {
	return &PgEnrollmentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create stores the (student, course) pair. A second enrollment of the same
// pair returns ErrAlreadyEnrolled.
func (r *PgEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id").
		Values(enrollment.StudentID, enrollment.CourseID).
		ToSql()
	if err != nil {
		return storageError("build create enrollment query", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateKeyError(err):
			return apperrors.ErrAlreadyEnrolled
		case dberrors.IsForeignKeyError(err):
			if dberrors.ConstraintName(err) == enrollmentCourseFK {
				return apperrors.NewReferenceNotFoundError("course", enrollment.CourseID)
			}
			return apperrors.NewReferenceNotFoundError("student", enrollment.StudentID)
		}
		return storageError("create enrollment", err)
	}
	return nil
}

// Get retrieves a single enrollment by its composite key
func (r *PgEnrollmentRepository) Get(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select("student_id", "course_id").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, storageError("build get enrollment query", err)
	}

	enrollment := &models.Enrollment{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.StudentID, &enrollment.CourseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewCustomError(apperrors.ErrNotFound, "enrollment not found").
				WithDetails(map[string]interface{}{"studentId": studentID, "courseId": courseID})
		}
		return nil, storageError("get enrollment", err)
	}
	return enrollment, nil
}

// List retrieves enrollments, optionally narrowed to one student or course
func (r *PgEnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
	query := r.sb.Select("student_id", "course_id").
		From("enrollments").
		OrderBy("student_id ASC", "course_id ASC")

	if filter.StudentID != 0 {
		query = query.Where(squirrel.Eq{"student_id": filter.StudentID})
	}
	if filter.CourseID != 0 {
		query = query.Where(squirrel.Eq{"course_id": filter.CourseID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, storageError("build list enrollments query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError("list enrollments", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		enrollment := &models.Enrollment{}
		if err := rows.Scan(&enrollment.StudentID, &enrollment.CourseID); err != nil {
			return nil, storageError("scan enrollment row", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("iterate enrollment rows", err)
	}
	return enrollments, nil
}

// Delete removes the (student, course) pair
func (r *PgEnrollmentRepository) Delete(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return storageError("build delete enrollment query", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storageError("delete enrollment", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewCustomError(apperrors.ErrNotFound, "enrollment not found").
			WithDetails(map[string]interface{}{"studentId": studentID, "courseId": courseID})
	}
	return nil
}
