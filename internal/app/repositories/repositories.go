package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/coursefeedback/internal/app/models"
)

// Errors shared by every store backend
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("record with this key already exists")
	ErrAlreadyEnrolled = errors.New("course already in enrollment set")
)

// CourseRepository persists courses keyed by code.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	// Update rewrites title and description of the course with course.Code.
	Update(ctx context.Context, course *models.Course) (*models.Course, error)
	Delete(ctx context.Context, code string) error
}

// StudentRepository persists students keyed by email.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	// AddEnrollment appends courseCode unless already present. Returns ErrNotFound for an unknown
	// email and ErrAlreadyEnrolled when the code is already in the set.
	AddEnrollment(ctx context.Context, email, courseCode string) (*models.Student, error)
}

// FeedbackRepository persists feedback entries keyed by ID.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ListByCourse(ctx context.Context, courseCode string) ([]*models.Feedback, error)
	UpdateText(ctx context.Context, id, text string) (*models.Feedback, error)
	Delete(ctx context.Context, id string) error
	DeleteByCourse(ctx context.Context, courseCode string) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository   CourseRepository
	StudentRepository  StudentRepository
	FeedbackRepository FeedbackRepository
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:   NewCourseRepository(db),
		StudentRepository:  NewStudentRepository(db),
		FeedbackRepository: NewFeedbackRepository(db),
	}
}
