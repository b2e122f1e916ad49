package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/yigit/coursefeedback/internal/app/models"
	"github.com/yigit/coursefeedback/internal/app/repositories/memory"
	"github.com/yigit/coursefeedback/internal/pkg/events"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	courses   CourseService
	students  StudentService
	feedback  FeedbackService
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repos := memory.NewStore().Repositories()
	pub := &recordingPublisher{}
	log := zerolog.Nop()

	courses := NewCourseService(repos.CourseRepository, pub, log)
	students := NewStudentService(repos.StudentRepository, courses, pub, log)
	feedback := NewFeedbackService(repos.FeedbackRepository, students, courses, pub, log)
	courses.RegisterCascade(feedback)

	return &fixture{courses: courses, students: students, feedback: feedback, publisher: pub}
}

// mockCourseRepository fails on demand to exercise store-error paths
type mockCourseRepository struct {
	mock.Mock
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockCourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	args := m.Called(ctx, code)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *mockCourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *mockCourseRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	args := m.Called(ctx, course)
	updated, _ := args.Get(0).(*models.Course)
	return updated, args.Error(1)
}

func (m *mockCourseRepository) Delete(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

type mockFeedbackRepository struct {
	mock.Mock
}

func (m *mockFeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *mockFeedbackRepository) ListByCourse(ctx context.Context, courseCode string) ([]*models.Feedback, error) {
	args := m.Called(ctx, courseCode)
	entries, _ := args.Get(0).([]*models.Feedback)
	return entries, args.Error(1)
}

func (m *mockFeedbackRepository) UpdateText(ctx context.Context, id, text string) (*models.Feedback, error) {
	args := m.Called(ctx, id, text)
	entry, _ := args.Get(0).(*models.Feedback)
	return entry, args.Error(1)
}

func (m *mockFeedbackRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFeedbackRepository) DeleteByCourse(ctx context.Context, courseCode string) (int64, error) {
	args := m.Called(ctx, courseCode)
	return args.Get(0).(int64), args.Error(1)
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
