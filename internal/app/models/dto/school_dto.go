package dto

import "github.com/yigit/trainerapi/internal/app/models"

// StudentRequest is the body of the create student endpoint
type StudentRequest struct {
	ID   int64  `json:"studentId" example:"3"`
	Name string `json:"name" example:"Misty"`
}

// ToModel converts the request to an unsaved student
func (r StudentRequest) ToModel() *models.Student {
	return &models.Student{ID: r.ID, Name: r.Name}
}

// StudentResponse is the external shape of a student
type StudentResponse struct {
	ID   int64  `json:"studentId" example:"3"`
	Name string `json:"name" example:"Misty"`
}

// FromStudent converts a models.Student to a StudentResponse
func FromStudent(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}
	return StudentResponse{ID: student.ID, Name: student.Name}
}

// CourseRequest is the body of the create and update course endpoints
type CourseRequest struct {
	ID    int64  `json:"courseId" example:"5"`
	Title string `json:"title" example:"Battling 101"`
}

// ToModel converts the request to a course
func (r CourseRequest) ToModel() *models.Course {
	return &models.Course{ID: r.ID, Title: r.Title}
}

// ApplyTo copies the writable fields onto course
func (r CourseRequest) ApplyTo(course *models.Course) {
	course.Title = r.Title
}

// CourseResponse is the external shape of a course
type CourseResponse struct {
	ID    int64  `json:"courseId" example:"5"`
	Title string `json:"title" example:"Battling 101"`
}

// FromCourse converts a models.Course to a CourseResponse
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}
	return CourseResponse{ID: course.ID, Title: course.Title}
}

// EnrollmentRequest names the student and course of an enrollment
type EnrollmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required" example:"3"`
	CourseID  int64 `json:"courseId" binding:"required" example:"5"`
}

// ToModel converts the request to an enrollment
func (r EnrollmentRequest) ToModel() *models.Enrollment {
	return &models.Enrollment{StudentID: r.StudentID, CourseID: r.CourseID}
}

// EnrollmentResponse is the external shape of an enrollment
type EnrollmentResponse struct {
	StudentID int64 `json:"studentId" example:"3"`
	CourseID  int64 `json:"courseId" example:"5"`
}

// FromEnrollment converts a models.Enrollment to an EnrollmentResponse
func FromEnrollment(enrollment *models.Enrollment) EnrollmentResponse {
	if enrollment == nil {
		return EnrollmentResponse{}
	}
	return EnrollmentResponse{StudentID: enrollment.StudentID, CourseID: enrollment.CourseID}
}
