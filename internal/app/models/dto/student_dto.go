package dto

import "github.com/yigit/coursefeedback/internal/app/models"

// CreateStudentRequest represents student registration data
type CreateStudentRequest struct {
	Name  string `json:"name" binding:"required" example:"Test Student"`
	Email string `json:"email" binding:"required" example:"student@example.com"`
}

// EnrollRequest carries the course code to enroll into
type EnrollRequest struct {
	CourseCode string `json:"courseCode" binding:"required" example:"CS101"`
}

// EnrollmentResponse is returned after a successful enrollment
type EnrollmentResponse struct {
	Message string          `json:"message" example:"Enrollment successful"`
	Student *models.Student `json:"student"`
}

// EnrolledCoursesResponse lists a student's course codes
type EnrolledCoursesResponse struct {
	EnrolledCourses []string `json:"enrolledCourses" example:"CS101"`
}
