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

// StudentService defines the interface for student-related operations
type StudentService interface {
	Create(ctx context.Context, name, email string) (*models.Student, error)
	Get(ctx context.Context, email string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Enroll(ctx context.Context, email, courseCode string) (*models.Student, error)
	ListEnrollments(ctx context.Context, email string) ([]string, error)
}

type studentServiceImpl struct {
	studentRepo   repositories.StudentRepository
	courseService CourseService
	publisher     events.Publisher
	logger        zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo repositories.StudentRepository,
	courseService CourseService,
	publisher events.Publisher,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		studentRepo:   studentRepo,
		courseService: courseService,
		publisher:     publisher,
		logger:        logger.With().Str("service", "student").Logger(),
	}
}

// Create registers a student with an empty enrollment set
func (s *studentServiceImpl) Create(ctx context.Context, name, email string) (*models.Student, error) {
	student := &models.Student{
		Name:            normalize(name),
		Email:           normalize(email),
		EnrolledCourses: []string{},
	}

	if err := validation.All(
		validation.NewStringValidation("name", student.Name),
		validation.NewStringValidation("email", student.Email),
	); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.NewDuplicateKeyError("Student email must be unique")
		}
		return nil, apperrors.NewStoreError("create student", err)
	}

	s.logger.Info().Str("email", student.Email).Msg("Student created")
	publish(ctx, s.publisher, s.logger, events.New(events.StudentCreated, student.Email, nil))
	return student, nil
}

// Get retrieves a student by email
func (s *studentServiceImpl) Get(ctx context.Context, email string) (*models.Student, error) {
	email = normalize(email)
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.EntityStudent, email)
		}
		return nil, apperrors.NewStoreError("get student", err)
	}
	return student, nil
}

// List retrieves all students
func (s *studentServiceImpl) List(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("list students", err)
	}
	if students == nil {
		students = []*models.Student{}
	}
	return students, nil
}

// Enroll adds courseCode to the student's enrollment set.
// The course check and the write are separate store operations.
func (s *studentServiceImpl) Enroll(ctx context.Context, email, courseCode string) (*models.Student, error) {
	email = normalize(email)
	courseCode = normalize(courseCode)

	if err := validation.NewStringValidation("courseCode", courseCode).Validate(); err != nil {
		return nil, err
	}

	student, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	if _, err := s.courseService.Get(ctx, courseCode); err != nil {
		return nil, err
	}

	if student.IsEnrolled(courseCode) {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	updated, err := s.studentRepo.AddEnrollment(ctx, email, courseCode)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyEnrolled):
			return nil, apperrors.ErrAlreadyEnrolled
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NewNotFoundError(apperrors.EntityStudent, email)
		}
		return nil, apperrors.NewStoreError("enroll student", err)
	}

	s.logger.Info().Str("email", email).Str("courseCode", courseCode).Msg("Student enrolled")
	publish(ctx, s.publisher, s.logger, events.New(events.StudentEnrolled, email, map[string]string{"courseCode": courseCode}))
	return updated, nil
}

// ListEnrollments returns the course codes the student is enrolled in
func (s *studentServiceImpl) ListEnrollments(ctx context.Context, email string) ([]string, error) {
	student, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if student.EnrolledCourses == nil {
		return []string{}, nil
	}
	return student.EnrolledCourses, nil
}
