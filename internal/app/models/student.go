package models

import "slices"

// Student is identified by email. EnrolledCourses holds course codes in enrollment order and
// never contains duplicates.
type Student struct {
	Name            string   `json:"name" db:"name" example:"Test Student"`
	Email           string   `json:"email" db:"email" example:"student@example.com"`
	EnrolledCourses []string `json:"enrolledCourses" db:"enrolled_courses" example:"CS101"`
}

// IsEnrolled reports whether the student is enrolled in the given course code.
func (s *Student) IsEnrolled(courseCode string) bool {
	return slices.Contains(s.EnrolledCourses, courseCode)
}
