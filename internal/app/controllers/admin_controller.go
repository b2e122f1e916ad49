package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/coursefeedback/internal/app/models/dto"
	"github.com/yigit/coursefeedback/internal/app/services"
	"github.com/yigit/coursefeedback/internal/middleware"
	"github.com/yigit/coursefeedback/internal/seed"
)

// AdminController exposes helpers for manual testing
type AdminController struct {
	courseService  services.CourseService
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(courseService services.CourseService, studentService services.StudentService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		courseService:  courseService,
		studentService: studentService,
		logger:         logger,
	}
}

// CreateTestData makes sure the demo course and enrolled student exist
func (c *AdminController) CreateTestData(ctx *gin.Context) {
	data, err := seed.CreateTestData(ctx, c.courseService, c.studentService, c.logger)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TestDataResponse{
		Course:           data.Course,
		Student:          data.Student,
		FormInstructions: seed.FormInstructions,
	}, "Test data created successfully!"))
}
