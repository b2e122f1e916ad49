package models

// Course is identified by its code, which never changes after creation.
type Course struct {
	Title       string `json:"title" db:"title" example:"Web Development"`
	Code        string `json:"code" db:"code" example:"CS101"`
	Description string `json:"description" db:"description" example:"Learn HTML, CSS, and JavaScript"`
}
