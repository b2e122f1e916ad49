package dto

// SubmitFeedbackRequest represents a feedback submission
type SubmitFeedbackRequest struct {
	StudentEmail string `json:"studentEmail" binding:"required" example:"student@example.com"`
	CourseCode   string `json:"courseCode" binding:"required" example:"CS101"`
	Feedback     string `json:"feedback" binding:"required" example:"Excellent course! Very comprehensive."`
}

// UpdateFeedbackRequest replaces the feedback text
type UpdateFeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required" example:"Updated thoughts"`
}
