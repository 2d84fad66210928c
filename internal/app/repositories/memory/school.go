package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

type studentRepository struct {
	t *tables
}

func (r *studentRepository) Create(_ context.Context, student *models.Student) error {
	student.ID = r.t.nextID("students")
	r.t.students[student.ID] = *student
	return nil
}

func (r *studentRepository) List(_ context.Context) ([]*models.Student, error) {
	students := []*models.Student{}
	for _, student := range sortedValues(r.t.students) {
		students = append(students, &student)
	}
	return students, nil
}

func (r *studentRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.t.students[id]
	return ok, nil
}

type courseRepository struct {
	t *tables
}

func (r *courseRepository) Create(_ context.Context, course *models.Course) error {
	course.ID = r.t.nextID("courses")
	r.t.courses[course.ID] = *course
	return nil
}

func (r *courseRepository) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := r.t.courses[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("course", id)
	}
	return &course, nil
}

func (r *courseRepository) List(_ context.Context) ([]*models.Course, error) {
	courses := []*models.Course{}
	for _, course := range sortedValues(r.t.courses) {
		courses = append(courses, &course)
	}
	return courses, nil
}

func (r *courseRepository) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.t.courses[course.ID]; !ok {
		return apperrors.NewNotFoundError("course", course.ID)
	}
	r.t.courses[course.ID] = *course
	return nil
}

// Delete removes the course and its enrollments.
func (r *courseRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.t.courses[id]; !ok {
		return apperrors.NewNotFoundError("course", id)
	}
	delete(r.t.courses, id)
	for key := range r.t.enrollments {
		if key.courseID == id {
			delete(r.t.enrollments, key)
		}
	}
	return nil
}

func (r *courseRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.t.courses[id]
	return ok, nil
}

type enrollmentRepository struct {
	t *tables
}

func enrollmentNotFound(studentID, courseID int64) error {
	return apperrors.NewCustomError(apperrors.ErrNotFound, "enrollment not found").
		WithDetails(map[string]interface{}{"studentId": studentID, "courseId": courseID})
}

func (r *enrollmentRepository) Create(_ context.Context, enrollment *models.Enrollment) error {
	if _, ok := r.t.students[enrollment.StudentID]; !ok {
		return apperrors.NewReferenceNotFoundError("student", enrollment.StudentID)
	}
	if _, ok := r.t.courses[enrollment.CourseID]; !ok {
		return apperrors.NewReferenceNotFoundError("course", enrollment.CourseID)
	}

	key := enrollmentKey{studentID: enrollment.StudentID, courseID: enrollment.CourseID}
	if _, ok := r.t.enrollments[key]; ok {
		return apperrors.ErrAlreadyEnrolled
	}
	r.t.enrollments[key] = struct{}{}
	return nil
}

func (r *enrollmentRepository) Get(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if _, ok := r.t.enrollments[enrollmentKey{studentID: studentID, courseID: courseID}]; !ok {
		return nil, enrollmentNotFound(studentID, courseID)
	}
	return &models.Enrollment{StudentID: studentID, CourseID: courseID}, nil
}

func (r *enrollmentRepository) List(_ context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
	enrollments := []*models.Enrollment{}
	for key := range r.t.enrollments {
		if filter.StudentID != 0 && key.studentID != filter.StudentID {
			continue
		}
		if filter.CourseID != 0 && key.courseID != filter.CourseID {
			continue
		}
		enrollments = append(enrollments, &models.Enrollment{StudentID: key.studentID, CourseID: key.courseID})
	}

	slices.SortFunc(enrollments, func(a, b *models.Enrollment) int {
		return cmp.Or(cmp.Compare(a.StudentID, b.StudentID), cmp.Compare(a.CourseID, b.CourseID))
	})
	return enrollments, nil
}

func (r *enrollmentRepository) Delete(_ context.Context, studentID, courseID int64) error {
	key := enrollmentKey{studentID: studentID, courseID: courseID}
	if _, ok := r.t.enrollments[key]; !ok {
		return enrollmentNotFound(studentID, courseID)
	}
	delete(r.t.enrollments, key)
	return nil
}
