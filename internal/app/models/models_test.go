package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentIsEnrolled(t *testing.T) {
	s := &Student{Name: "A", Email: "a@x.com", EnrolledCourses: []string{"CS101", "MA201"}}

	assert.True(t, s.IsEnrolled("CS101"))
	assert.False(t, s.IsEnrolled("cs101"))
	assert.False(t, (&Student{}).IsEnrolled("CS101"))
}

func TestFeedbackJSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(Feedback{ID: "id-1", StudentEmail: "a@x.com", CourseCode: "CS101", Feedback: "Good"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"id-1","studentEmail":"a@x.com","courseCode":"CS101","feedback":"Good"}`, string(raw))
}
