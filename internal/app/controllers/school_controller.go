package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainerapi/internal/app/models"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/app/services"
	"github.com/yigit/trainerapi/internal/middleware"
)

// SchoolController handles students, courses and enrollments
type SchoolController struct {
	schoolService services.SchoolService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService services.SchoolService) *SchoolController {
	return &SchoolController{
		schoolService: schoolService,
	}
}

// GetStudents lists students
// @Summary List students
// @Tags school
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Router /school/students [get]
func (c *SchoolController) GetStudents(ctx *gin.Context) {
	students, err := c.schoolService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// CreateStudent handles student creation
// @Summary Create a student
// @Tags school
// @Accept json
// @Produce json
// @Param request body dto.StudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Router /school/students [post]
func (c *SchoolController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.schoolService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// GetCourses lists courses
// @Summary List courses
// @Tags school
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse}
// @Router /school/courses [get]
func (c *SchoolController) GetCourses(ctx *gin.Context) {
	courses, err := c.schoolService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags school
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse}
// @Router /school/courses [post]
func (c *SchoolController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.schoolService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourseByID retrieves a course
// @Summary Get course by ID
// @Tags school
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /school/courses/{id} [get]
func (c *SchoolController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.schoolService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// UpdateCourse renames a course
// @Summary Update a course
// @Tags school
// @Accept json
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course, courseId must equal the path ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse "ID mismatch"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /school/courses/{id} [put]
func (c *SchoolController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.schoolService.UpdateCourse(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// DeleteCourse removes a course and its enrollments
// @Summary Delete a course
// @Tags school
// @Param id path int true "Course ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /school/courses/{id} [delete]
func (c *SchoolController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.schoolService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Enroll enrolls a student in a course
// @Summary Enroll a student
// @Tags school
// @Accept json
// @Param request body dto.EnrollmentRequest true "Student and course"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse "Unknown student or course, or already enrolled"
// @Router /school/enroll [post]
func (c *SchoolController) Enroll(ctx *gin.Context) {
	var req dto.EnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment := req.ToModel()
	if err := c.schoolService.Enroll(ctx.Request.Context(), enrollment.StudentID, enrollment.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Unenroll removes a student from a course
// @Summary Unenroll a student
// @Tags school
// @Accept json
// @Param request body dto.EnrollmentRequest true "Student and course"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /school/enroll [delete]
func (c *SchoolController) Unenroll(ctx *gin.Context) {
	var req dto.EnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment := req.ToModel()
	if err := c.schoolService.Unenroll(ctx.Request.Context(), enrollment.StudentID, enrollment.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetEnrollments lists enrollments
// @Summary List enrollments
// @Tags school
// @Produce json
// @Param studentId query int false "Only this student"
// @Param courseId query int false "Only this course"
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse}
// @Failure 400 {object} dto.ErrorResponse "Malformed id"
// @Router /school/enroll [get]
func (c *SchoolController) GetEnrollments(ctx *gin.Context) {
	studentID, ok := parseIDQuery(ctx, "studentId")
	if !ok {
		return
	}
	courseID, ok := parseIDQuery(ctx, "courseId")
	if !ok {
		return
	}

	enrollments, err := c.schoolService.ListEnrollments(ctx.Request.Context(), models.EnrollmentFilter{
		StudentID: studentID,
		CourseID:  courseID,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}
