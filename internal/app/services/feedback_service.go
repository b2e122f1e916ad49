package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/coursefeedback/internal/app/models"
	"github.com/yigit/coursefeedback/internal/app/repositories"
	"github.com/yigit/coursefeedback/internal/pkg/apperrors"
	"github.com/yigit/coursefeedback/internal/pkg/events"
	"github.com/yigit/coursefeedback/internal/pkg/validation"
)

// FeedbackService defines the interface for feedback-related operations
type FeedbackService interface {
	Submit(ctx context.Context, studentEmail, courseCode, text string) (*models.Feedback, error)
	ListByCourse(ctx context.Context, courseCode string) ([]*models.Feedback, error)
	Update(ctx context.Context, id, text string) (*models.Feedback, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForCourse(ctx context.Context, courseCode string) (int64, error)
}

type feedbackServiceImpl struct {
	feedbackRepo   repositories.FeedbackRepository
	studentService StudentService
	courseService  CourseService
	publisher      events.Publisher
	logger         zerolog.Logger
	newID          func() string
}

// NewFeedbackService creates a new feedback service instance
func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	studentService StudentService,
	courseService CourseService,
	publisher events.Publisher,
	logger zerolog.Logger,
) FeedbackService {
	return &feedbackServiceImpl{
		feedbackRepo:   feedbackRepo,
		studentService: studentService,
		courseService:  courseService,
		publisher:      publisher,
		logger:         logger.With().Str("service", "feedback").Logger(),
		newID:          func() string { return uuid.NewString() },
	}
}

// Submit records feedback from an enrolled student
func (s *feedbackServiceImpl) Submit(ctx context.Context, studentEmail, courseCode, text string) (*models.Feedback, error) {
	entry := &models.Feedback{
		StudentEmail: normalize(studentEmail),
		CourseCode:   normalize(courseCode),
		Feedback:     normalize(text),
	}

	if err := validation.All(
		validation.NewStringValidation("studentEmail", entry.StudentEmail),
		validation.NewStringValidation("courseCode", entry.CourseCode),
		validation.NewStringValidation("feedback", entry.Feedback),
	); err != nil {
		return nil, err
	}

	student, err := s.studentService.Get(ctx, entry.StudentEmail)
	if err != nil {
		return nil, err
	}

	if _, err := s.courseService.Get(ctx, entry.CourseCode); err != nil {
		return nil, err
	}

	if !student.IsEnrolled(entry.CourseCode) {
		return nil, apperrors.ErrNotEnrolled
	}

	entry.ID = s.newID()
	if err := s.feedbackRepo.Create(ctx, entry); err != nil {
		return nil, apperrors.NewStoreError("submit feedback", err)
	}

	s.logger.Info().Str("feedbackID", entry.ID).Str("courseCode", entry.CourseCode).Msg("Feedback submitted")
	publish(ctx, s.publisher, s.logger, events.New(events.FeedbackSubmitted, entry.ID, map[string]string{
		"courseCode":   entry.CourseCode,
		"studentEmail": entry.StudentEmail,
	}))
	return entry, nil
}

// ListByCourse returns the feedback for a course. An unknown course yields an empty list.
func (s *feedbackServiceImpl) ListByCourse(ctx context.Context, courseCode string) ([]*models.Feedback, error) {
	entries, err := s.feedbackRepo.ListByCourse(ctx, normalize(courseCode))
	if err != nil {
		return nil, apperrors.NewStoreError("list feedback", err)
	}
	if entries == nil {
		entries = []*models.Feedback{}
	}
	return entries, nil
}

// Update replaces the text of an entry
func (s *feedbackServiceImpl) Update(ctx context.Context, id, text string) (*models.Feedback, error) {
	id = normalize(id)
	text = normalize(text)

	if err := validation.NewStringValidation("feedback", text).Validate(); err != nil {
		return nil, err
	}

	updated, err := s.feedbackRepo.UpdateText(ctx, id, text)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.EntityFeedback, id)
		}
		return nil, apperrors.NewStoreError("update feedback", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.FeedbackUpdated, updated.ID, map[string]string{"courseCode": updated.CourseCode}))
	return updated, nil
}

// Delete removes a single entry
func (s *feedbackServiceImpl) Delete(ctx context.Context, id string) error {
	id = normalize(id)
	if err := s.feedbackRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.EntityFeedback, id)
		}
		return apperrors.NewStoreError("delete feedback", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.FeedbackDeleted, id, nil))
	return nil
}

// DeleteAllForCourse removes every entry for a course. Zero matches is not an error.
func (s *feedbackServiceImpl) DeleteAllForCourse(ctx context.Context, courseCode string) (int64, error) {
	removed, err := s.feedbackRepo.DeleteByCourse(ctx, normalize(courseCode))
	if err != nil {
		return 0, apperrors.NewStoreError("delete course feedback", err)
	}
	return removed, nil
}
