package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/coursefeedback/internal/app/models"
	appServices "github.com/yigit/coursefeedback/internal/app/services"
	"github.com/yigit/coursefeedback/internal/pkg/apperrors"
)

// Demo records used by the admin endpoint and the startup seed
const (
	TestCourseCode        = "TEST101"
	TestCourseTitle       = "Test Course"
	TestCourseDescription = "Test course description"
	TestStudentEmail      = "test@example.com"
	FormInstructions      = "Use Email: test@example.com, Course Code: TEST101"
)

// TestData is what CreateTestData leaves in the store
type TestData struct {
	Course  *appModels.Course
	Student *appModels.Student
}

// CreateTestData makes sure the demo course and an enrolled demo student exist.
// An existing demo course is reset to its canonical title and description; the
// student and its enrollments are reused as-is.
func CreateTestData(ctx context.Context, courses appServices.CourseService, students appServices.StudentService, lgr zerolog.Logger) (*TestData, error) {
	lgr.Info().Msg("Checking/Creating test data (course/student)...")

	course, err := courses.Get(ctx, TestCourseCode)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		course, err = courses.Create(ctx, TestCourseTitle, TestCourseCode, TestCourseDescription)
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			course, err = courses.Get(ctx, TestCourseCode)
		}
	}
	if err == nil && (course.Title != TestCourseTitle || course.Description != TestCourseDescription) {
		lgr.Info().Str("course", TestCourseCode).Msg("Restoring edited test course")
		course, err = courses.Update(ctx, TestCourseCode, TestCourseTitle, TestCourseDescription)
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating test course")
		return nil, err
	}

	student, err := students.Get(ctx, TestStudentEmail)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		student, err = students.Create(ctx, "Test Student", TestStudentEmail)
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			student, err = students.Get(ctx, TestStudentEmail)
		}
	}
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating test student")
		return nil, err
	}

	if !student.IsEnrolled(course.Code) {
		enrolled, err := students.Enroll(ctx, student.Email, course.Code)
		switch {
		case err == nil:
			student = enrolled
		case errors.Is(err, apperrors.ErrAlreadyEnrolled):
			if student, err = students.Get(ctx, TestStudentEmail); err != nil {
				return nil, err
			}
		default:
			lgr.Error().Err(err).Msg("Error enrolling test student")
			return nil, err
		}
	}

	lgr.Info().Str("course", course.Code).Str("student", student.Email).Msg("Test data ready")
	return &TestData{Course: course, Student: student}, nil
}
