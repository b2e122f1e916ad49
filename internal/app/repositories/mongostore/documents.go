// Package mongostore implements the repositories on MongoDB, one collection per entity.
package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/coursefeedback/internal/app/models"
)

// Collection names
const (
	CoursesCollection  = "courses"
	StudentsCollection = "students"
	FeedbackCollection = "feedback"
)

type courseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Code        string             `bson:"code"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *courseDocument) toModel() *models.Course {
	return &models.Course{Title: d.Title, Code: d.Code, Description: d.Description}
}

type studentDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Email           string             `bson:"email"`
	EnrolledCourses []string           `bson:"enrolledCourses"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func (d *studentDocument) toModel() *models.Student {
	enrolled := d.EnrolledCourses
	if enrolled == nil {
		enrolled = []string{}
	}
	return &models.Student{Name: d.Name, Email: d.Email, EnrolledCourses: enrolled}
}

type feedbackDocument struct {
	ID           string    `bson:"_id"`
	StudentEmail string    `bson:"studentEmail"`
	CourseCode   string    `bson:"courseCode"`
	Feedback     string    `bson:"feedback"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (d *feedbackDocument) toModel() *models.Feedback {
	return &models.Feedback{ID: d.ID, StudentEmail: d.StudentEmail, CourseCode: d.CourseCode, Feedback: d.Feedback}
}
