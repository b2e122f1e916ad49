package dto

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required" example:"Web Development"`
	Code        string `json:"code" binding:"required" example:"CS101"`
	Description string `json:"description" binding:"required" example:"Learn HTML, CSS, and JavaScript"`
}

// UpdateCourseRequest represents course update data; the code comes from the path
type UpdateCourseRequest struct {
	Title       string `json:"title" binding:"required" example:"Advanced Web Development"`
	Description string `json:"description" binding:"required" example:"Frameworks and tooling"`
}
