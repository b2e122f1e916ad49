package dto

import "github.com/yigit/coursefeedback/internal/app/models"

// TestDataResponse describes the demo records created by the admin endpoint
type TestDataResponse struct {
	Course           *models.Course  `json:"course"`
	Student          *models.Student `json:"student"`
	FormInstructions string          `json:"form_instructions" example:"Use Email: test@example.com, Course Code: TEST101"`
}
