package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursefeedback/internal/app/models/dto"
	"github.com/yigit/coursefeedback/internal/app/services"
	"github.com/yigit/coursefeedback/internal/middleware"
)

// StudentController handles student registration and enrollment
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent registers a student
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Create(ctx, req.Name, req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student, "Student created successfully"))
}

// GetAllStudents lists every student
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// GetStudent retrieves a student by email
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.Get(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// Enroll adds a course to the student's enrollment set
func (c *StudentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Enroll(ctx, ctx.Param("email"), req.CourseCode)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	const msg = "Enrollment successful"
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EnrollmentResponse{Message: msg, Student: student}, msg))
}

// GetEnrolledCourses lists the course codes a student is enrolled in
func (c *StudentController) GetEnrolledCourses(ctx *gin.Context) {
	codes, err := c.studentService.ListEnrollments(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EnrolledCoursesResponse{EnrolledCourses: codes}, ""))
}
