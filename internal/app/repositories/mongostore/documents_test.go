package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/yigit/coursefeedback/internal/app/models"
)

func TestStudentDocumentRoundTrip(t *testing.T) {
	raw, err := bson.Marshal(studentDocument{
		Name:      "Test Student",
		Email:     "test@example.com",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var doc studentDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))

	// a missing enrollment array decodes to an empty, non-nil set
	assert.Equal(t, &models.Student{Name: "Test Student", Email: "test@example.com", EnrolledCourses: []string{}}, doc.toModel())
}

func TestFeedbackDocumentUsesIDAsPrimaryKey(t *testing.T) {
	raw, err := bson.Marshal(feedbackDocument{ID: "f-1", StudentEmail: "a@x.com", CourseCode: "CS101", Feedback: "Good"})
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "f-1", m["_id"])
	assert.Equal(t, "CS101", m["courseCode"])
}

func TestCourseDocumentOmitsZeroObjectID(t *testing.T) {
	raw, err := bson.Marshal(courseDocument{Title: "T", Code: "CS101", Description: "D"})
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	_, hasID := m["_id"]
	assert.False(t, hasID)
}
