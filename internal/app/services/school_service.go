package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/app/repositories"
	"github.com/yigit/trainerapi/internal/pkg/apperrors"
)

// SchoolService defines the interface for student, course and enrollment operations
type SchoolService interface {
	ListStudents(ctx context.Context) ([]dto.StudentResponse, error)
	CreateStudent(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error)

	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) error
	DeleteCourse(ctx context.Context, id int64) error

	Enroll(ctx context.Context, studentID, courseID int64) error
	Unenroll(ctx context.Context, studentID, courseID int64) error
	ListEnrollments(ctx context.Context, filter models.EnrollmentFilter) ([]dto.EnrollmentResponse, error)
}

// schoolServiceImpl implements SchoolService
type schoolServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(store repositories.Store, logger zerolog.Logger) SchoolService {
	return &schoolServiceImpl{
		store:  store,
		logger: logger,
	}
}

// ListStudents returns every student
func (s *schoolServiceImpl) ListStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	log := requestLogger(ctx, s.logger)

	var students []*models.Student
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		students, err = repos.Students.List(ctx)
		return err
	})
	if err != nil {
		logFailure(log, err).Msg("Failed to list students")
		return nil, fmt.Errorf("list students: %w", err)
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.FromStudent(student))
	}
	return responses, nil
}

// CreateStudent stores a new student. The store assigns the id.
func (s *schoolServiceImpl) CreateStudent(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error) {
	log := requestLogger(ctx, s.logger)

	student := req.ToModel()
	student.ID = 0
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Students.Create(ctx, student)
	})
	if err != nil {
		logFailure(log, err).Msg("Failed to create student")
		return nil, fmt.Errorf("create student: %w", err)
	}

	log.Info().Int64("studentID", student.ID).Msg("Student created")

	resp := dto.FromStudent(student)
	return &resp, nil
}

// ListCourses returns every course
func (s *schoolServiceImpl) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	log := requestLogger(ctx, s.logger)

	var courses []*models.Course
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		courses, err = repos.Courses.List(ctx)
		return err
	})
	if err != nil {
		logFailure(log, err).Msg("Failed to list courses")
		return nil, fmt.Errorf("list courses: %w", err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.FromCourse(course))
	}
	return responses, nil
}

// CreateCourse stores a new course. The store assigns the id.
func (s *schoolServiceImpl) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	log := requestLogger(ctx, s.logger)

	course := req.ToModel()
	course.ID = 0
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Courses.Create(ctx, course)
	})
	if err != nil {
		logFailure(log, err).Str("title", req.Title).Msg("Failed to create course")
		return nil, fmt.Errorf("create course: %w", err)
	}

	log.Info().Int64("courseID", course.ID).Str("title", course.Title).Msg("Course created")

	resp := dto.FromCourse(course)
	return &resp, nil
}

// GetCourse returns a course or ErrNotFound
func (s *schoolServiceImpl) GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	log := requestLogger(ctx, s.logger)

	var course *models.Course
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		course, err = repos.Courses.GetByID(ctx, id)
		return err
	})
	if err != nil {
		logFailure(log, err).Int64("courseID", id).Msg("Failed to get course")
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}

	resp := dto.FromCourse(course)
	return &resp, nil
}

// UpdateCourse overwrites the title of course id
func (s *schoolServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) error {
	log := requestLogger(ctx, s.logger)

	if req.ID != id {
		err := apperrors.NewIDMismatchError(id, req.ID)
		logFailure(log, err).Int64("courseID", id).Int64("payloadID", req.ID).Msg("Rejected course update")
		return err
	}

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		course, err := repos.Courses.GetByID(ctx, id)
		if err != nil {
			return err
		}

		req.ApplyTo(course)
		return repos.Courses.Update(ctx, course)
	})
	if err != nil {
		logFailure(log, err).Int64("courseID", id).Msg("Failed to update course")
		return fmt.Errorf("update course %d: %w", id, err)
	}

	log.Info().Int64("courseID", id).Msg("Course updated")
	return nil
}

// DeleteCourse removes a course along with its enrollments
func (s *schoolServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	log := requestLogger(ctx, s.logger)

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Courses.Delete(ctx, id)
	})
	if err != nil {
		logFailure(log, err).Int64("courseID", id).Msg("Failed to delete course")
		return fmt.Errorf("delete course %d: %w", id, err)
	}

	log.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}

// Enroll records that the student takes the course. Both must exist
// (ErrReferenceNotFound) and the pair must be new (ErrAlreadyEnrolled).
func (s *schoolServiceImpl) Enroll(ctx context.Context, studentID, courseID int64) error {
	log := requestLogger(ctx, s.logger)

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		found, err := repos.Students.Exists(ctx, studentID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.NewReferenceNotFoundError("student", studentID)
		}

		found, err = repos.Courses.Exists(ctx, courseID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.NewReferenceNotFoundError("course", courseID)
		}

		return repos.Enrollments.Create(ctx, &models.Enrollment{StudentID: studentID, CourseID: courseID})
	})
	if err != nil {
		logFailure(log, err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Failed to enroll student")
		return fmt.Errorf("enroll student %d in course %d: %w", studentID, courseID, err)
	}

	log.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled")
	return nil
}

// Unenroll removes the exact (student, course) pair, or fails with ErrNotFound
func (s *schoolServiceImpl) Unenroll(ctx context.Context, studentID, courseID int64) error {
	log := requestLogger(ctx, s.logger)

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		enrollment, err := repos.Enrollments.Get(ctx, studentID, courseID)
		if err != nil {
			return err
		}
		return repos.Enrollments.Delete(ctx, enrollment.StudentID, enrollment.CourseID)
	})
	if err != nil {
		logFailure(log, err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Failed to unenroll student")
		return fmt.Errorf("unenroll student %d from course %d: %w", studentID, courseID, err)
	}

	log.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student unenrolled")
	return nil
}

// ListEnrollments returns the enrollments matching filter
func (s *schoolServiceImpl) ListEnrollments(ctx context.Context, filter models.EnrollmentFilter) ([]dto.EnrollmentResponse, error) {
	log := requestLogger(ctx, s.logger)

	var enrollments []*models.Enrollment
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		enrollments, err = repos.Enrollments.List(ctx, filter)
		return err
	})
	if err != nil {
		logFailure(log, err).Msg("Failed to list enrollments")
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, dto.FromEnrollment(enrollment))
	}
	return responses, nil
}
