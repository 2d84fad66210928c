package models

// Enrollment links a student to a course. The (StudentID, CourseID) pair is
// the primary key, so a student can be enrolled in a given course only once.
type Enrollment struct {
	StudentID int64 `json:"studentId" db:"student_id"`
	CourseID  int64 `json:"courseId" db:"course_id"`
}

// EnrollmentFilter narrows an enrollment listing. Zero values mean no filter.
type EnrollmentFilter struct {
	StudentID int64
	CourseID  int64
}
