package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yigit/coursefeedback/internal/app/models"
	"github.com/yigit/coursefeedback/internal/app/repositories"
	"github.com/yigit/coursefeedback/internal/pkg/dberrors"
	"github.com/yigit/coursefeedback/internal/pkg/logger"
)

// EnsureIndexes creates the unique indexes that enforce natural-key uniqueness
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		CoursesCollection: {
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("courses_code_key"),
		},
		StudentsCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("students_email_key"),
		},
		FeedbackCollection: {
			Keys:    bson.D{{Key: "courseCode", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("feedback_course_code_idx"),
		},
	}

	for collection, model := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", collection, err)
		}
	}
	return nil
}

// NewRepositories builds the MongoDB-backed repositories
func NewRepositories(db *mongo.Database) *repositories.Repositories {
	return &repositories.Repositories{
		CourseRepository:   &CourseRepository{coll: db.Collection(CoursesCollection)},
		StudentRepository:  &StudentRepository{coll: db.Collection(StudentsCollection)},
		FeedbackRepository: &FeedbackRepository{coll: db.Collection(FeedbackCollection)},
	}
}

// CourseRepository stores courses in the "courses" collection
type CourseRepository struct {
	coll *mongo.Collection
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	doc := courseDocument{
		Title:       course.Title,
		Code:        course.Code,
		Description: course.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		logger.Error().Err(err).Str("code", course.Code).Msg("Error inserting course document")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByCode retrieves a course by its code
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	var doc courseDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "code", Value: code}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		logger.Error().Err(err).Str("code", code).Msg("Error finding course document")
		return nil, fmt.Errorf("error getting course by code: %w", err)
	}
	return doc.toModel(), nil
}

// List retrieves all courses in insertion order
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		logger.Error().Err(err).Msg("Error querying course documents")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}

	var docs []courseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding courses: %w", err)
	}

	courses := make([]*models.Course, 0, len(docs))
	for i := range docs {
		courses = append(courses, docs[i].toModel())
	}
	return courses, nil
}

// Update changes title and description of the course with course.Code
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: course.Title},
		{Key: "description", Value: course.Description},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	var doc courseDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "code", Value: course.Code}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		logger.Error().Err(err).Str("code", course.Code).Msg("Error updating course document")
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return doc.toModel(), nil
}

// Delete removes a course by code
func (r *CourseRepository) Delete(ctx context.Context, code string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "code", Value: code}})
	if err != nil {
		logger.Error().Err(err).Str("code", code).Msg("Error deleting course document")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// StudentRepository stores students in the "students" collection
type StudentRepository struct {
	coll *mongo.Collection
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	enrolled := student.EnrolledCourses
	if enrolled == nil {
		enrolled = []string{}
	}
	doc := studentDocument{
		Name:            student.Name,
		Email:           student.Email,
		EnrolledCourses: enrolled,
		CreatedAt:       time.Now().UTC(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error inserting student document")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var doc studentDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error finding student document")
		return nil, fmt.Errorf("error getting student by email: %w", err)
	}
	return doc.toModel(), nil
}

// List retrieves all students in insertion order
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		logger.Error().Err(err).Msg("Error querying student documents")
		return nil, fmt.Errorf("error querying students: %w", err)
	}

	var docs []studentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding students: %w", err)
	}

	students := make([]*models.Student, 0, len(docs))
	for i := range docs {
		students = append(students, docs[i].toModel())
	}
	return students, nil
}

// AddEnrollment pushes the course code only when it is absent, in one atomic update
func (r *StudentRepository) AddEnrollment(ctx context.Context, email, courseCode string) (*models.Student, error) {
	filter := bson.D{
		{Key: "email", Value: email},
		{Key: "enrolledCourses", Value: bson.D{{Key: "$ne", Value: courseCode}}},
	}
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "enrolledCourses", Value: courseCode}}}}

	var doc studentDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.toModel(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		logger.Error().Err(err).Str("email", email).Str("courseCode", courseCode).Msg("Error enrolling student")
		return nil, fmt.Errorf("error enrolling student: %w", err)
	}

	if _, err := r.GetByEmail(ctx, email); err != nil {
		return nil, err
	}
	return nil, repositories.ErrAlreadyEnrolled
}

// FeedbackRepository stores feedback in the "feedback" collection
type FeedbackRepository struct {
	coll *mongo.Collection
}

// Create inserts a feedback entry under its caller-assigned ID
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	now := time.Now().UTC()
	doc := feedbackDocument{
		ID:           feedback.ID,
		StudentEmail: feedback.StudentEmail,
		CourseCode:   feedback.CourseCode,
		Feedback:     feedback.Feedback,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		logger.Error().Err(err).Str("courseCode", feedback.CourseCode).Msg("Error inserting feedback document")
		return fmt.Errorf("error creating feedback: %w", err)
	}
	return nil
}

// ListByCourse retrieves the feedback for a course, oldest first
func (r *FeedbackRepository) ListByCourse(ctx context.Context, courseCode string) ([]*models.Feedback, error) {
	cursor, err := r.coll.Find(ctx,
		bson.D{{Key: "courseCode", Value: courseCode}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		logger.Error().Err(err).Str("courseCode", courseCode).Msg("Error querying feedback documents")
		return nil, fmt.Errorf("error querying feedback: %w", err)
	}

	var docs []feedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding feedback: %w", err)
	}

	entries := make([]*models.Feedback, 0, len(docs))
	for i := range docs {
		entries = append(entries, docs[i].toModel())
	}
	return entries, nil
}

// UpdateText replaces the text of one entry
func (r *FeedbackRepository) UpdateText(ctx context.Context, id, text string) (*models.Feedback, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "feedback", Value: text},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	var doc feedbackDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		logger.Error().Err(err).Str("feedbackID", id).Msg("Error updating feedback document")
		return nil, fmt.Errorf("error updating feedback: %w", err)
	}
	return doc.toModel(), nil
}

// Delete removes one entry
func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		logger.Error().Err(err).Str("feedbackID", id).Msg("Error deleting feedback document")
		return fmt.Errorf("error deleting feedback: %w", err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// DeleteByCourse removes every entry for a course
func (r *FeedbackRepository) DeleteByCourse(ctx context.Context, courseCode string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "courseCode", Value: courseCode}})
	if err != nil {
		logger.Error().Err(err).Str("courseCode", courseCode).Msg("Error deleting course feedback documents")
		return 0, fmt.Errorf("error deleting course feedback: %w", err)
	}
	return res.DeletedCount, nil
}
