package models

// Feedback is free text a student left for a course. StudentEmail and CourseCode are copies
// of the natural keys taken at submission time, not live references.
type Feedback struct {
	ID           string `json:"id" db:"id" example:"3f1c1b9e-3c8e-4d4e-9b8e-6a3b2a1f0c11"`
	StudentEmail string `json:"studentEmail" db:"student_email" example:"student@example.com"`
	CourseCode   string `json:"courseCode" db:"course_code" example:"CS101"`
	Feedback     string `json:"feedback" db:"feedback" example:"Excellent course!"`
}
