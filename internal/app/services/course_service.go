package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yigit/coursefeedback/internal/app/models"
	"github.com/yigit/coursefeedback/internal/app/repositories"
	"github.com/yigit/coursefeedback/internal/pkg/apperrors"
	"github.com/yigit/coursefeedback/internal/pkg/events"
	"github.com/yigit/coursefeedback/internal/pkg/validation"
)

// CourseCascade removes data that depends on a course. It runs after the course itself is deleted.
type CourseCascade interface {
	DeleteAllForCourse(ctx context.Context, courseCode string) (int64, error)
}

// CourseService defines the interface for course-related operations
type CourseService interface {
	Create(ctx context.Context, title, code, description string) (*models.Course, error)
	Get(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, code, title, description string) (*models.Course, error)
	Delete(ctx context.Context, code string) error
	RegisterCascade(cascade CourseCascade)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
	publisher  events.Publisher
	logger     zerolog.Logger
	cascades   []CourseCascade
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository, publisher events.Publisher, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		publisher:  publisher,
		logger:     logger.With().Str("service", "course").Logger(),
	}
}

// RegisterCascade adds a hook run by Delete. Call it during wiring, before serving requests.
func (s *courseServiceImpl) RegisterCascade(cascade CourseCascade) {
	s.cascades = append(s.cascades, cascade)
}

// Create registers a new course
func (s *courseServiceImpl) Create(ctx context.Context, title, code, description string) (*models.Course, error) {
	course := &models.Course{
		Title:       normalize(title),
		Code:        normalize(code),
		Description: normalize(description),
	}

	if err := validation.All(
		validation.NewStringValidation("title", course.Title),
		validation.NewStringValidation("code", course.Code),
		validation.NewStringValidation("description", course.Description),
	); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.NewDuplicateKeyError("Course code must be unique")
		}
		return nil, apperrors.NewStoreError("create course", err)
	}

	s.logger.Info().Str("code", course.Code).Msg("Course created")
	publish(ctx, s.publisher, s.logger, events.New(events.CourseCreated, course.Code, map[string]string{"title": course.Title}))
	return course, nil
}

// Get retrieves a course by its code
func (s *courseServiceImpl) Get(ctx context.Context, code string) (*models.Course, error) {
	code = normalize(code)
	course, err := s.courseRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.EntityCourse, code)
		}
		return nil, apperrors.NewStoreError("get course", err)
	}
	return course, nil
}

// List retrieves all courses
func (s *courseServiceImpl) List(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("list courses", err)
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return courses, nil
}

// Update replaces title and description. The code never changes.
func (s *courseServiceImpl) Update(ctx context.Context, code, title, description string) (*models.Course, error) {
	course := &models.Course{
		Title:       normalize(title),
		Code:        normalize(code),
		Description: normalize(description),
	}

	if err := validation.All(
		validation.NewStringValidation("title", course.Title),
		validation.NewStringValidation("description", course.Description),
	); err != nil {
		return nil, err
	}

	updated, err := s.courseRepo.Update(ctx, course)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.EntityCourse, course.Code)
		}
		return nil, apperrors.NewStoreError("update course", err)
	}

	publish(ctx, s.publisher, s.logger, events.New(events.CourseUpdated, updated.Code, nil))
	return updated, nil
}

// Delete removes a course and then every record registered cascades depend on.
// The two steps are not atomic.
func (s *courseServiceImpl) Delete(ctx context.Context, code string) error {
	code = normalize(code)
	if err := s.courseRepo.Delete(ctx, code); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.EntityCourse, code)
		}
		return apperrors.NewStoreError("delete course", err)
	}

	var removed int64
	for _, cascade := range s.cascades {
		n, err := cascade.DeleteAllForCourse(ctx, code)
		if err != nil {
			s.logger.Error().Err(err).Str("code", code).Msg("Cascade delete failed after course removal")
			return err
		}
		removed += n
	}

	s.logger.Info().Str("code", code).Int64("dependentsRemoved", removed).Msg("Course deleted")
	publish(ctx, s.publisher, s.logger, events.New(events.CourseDeleted, code, nil))
	return nil
}
