// Package memory implements the repositories in process memory. It backs tests and the
// "memory" database driver; data is lost when the process exits.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/yigit/coursefeedback/internal/app/models"
	"github.com/yigit/coursefeedback/internal/app/repositories"
)

// Store holds every collection behind one lock so each repository call is atomic.
type Store struct {
	mu       sync.RWMutex
	courses  []*models.Course
	students []*models.Student
	feedback []*models.Feedback
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Repositories returns repository views over the store
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		CourseRepository:   &CourseRepository{store: s},
		StudentRepository:  &StudentRepository{store: s},
		FeedbackRepository: &FeedbackRepository{store: s},
	}
}

func copyCourse(c *models.Course) *models.Course {
	cp := *c
	return &cp
}

func copyStudent(st *models.Student) *models.Student {
	cp := *st
	cp.EnrolledCourses = slices.Clone(st.EnrolledCourses)
	if cp.EnrolledCourses == nil {
		cp.EnrolledCourses = []string{}
	}
	return &cp
}

func copyFeedback(f *models.Feedback) *models.Feedback {
	cp := *f
	return &cp
}

// CourseRepository is the in-memory CourseRepository
type CourseRepository struct {
	store *Store
}

func (r *CourseRepository) indexOf(code string) int {
	return slices.IndexFunc(r.store.courses, func(c *models.Course) bool { return c.Code == code })
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.indexOf(course.Code) >= 0 {
		return repositories.ErrDuplicateKey
	}
	r.store.courses = append(r.store.courses, copyCourse(course))
	return nil
}

func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.indexOf(code)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	return copyCourse(r.store.courses[i]), nil
}

func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*models.Course, 0, len(r.store.courses))
	for _, c := range r.store.courses {
		out = append(out, copyCourse(c))
	}
	return out, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(course.Code)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	existing := r.store.courses[i]
	existing.Title = course.Title
	existing.Description = course.Description
	return copyCourse(existing), nil
}

func (r *CourseRepository) Delete(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(code)
	if i < 0 {
		return repositories.ErrNotFound
	}
	r.store.courses = slices.Delete(r.store.courses, i, i+1)
	return nil
}

// StudentRepository is the in-memory StudentRepository
type StudentRepository struct {
	store *Store
}

func (r *StudentRepository) indexOf(email string) int {
	return slices.IndexFunc(r.store.students, func(s *models.Student) bool { return s.Email == email })
}

func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.indexOf(student.Email) >= 0 {
		return repositories.ErrDuplicateKey
	}
	r.store.students = append(r.store.students, copyStudent(student))
	return nil
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.indexOf(email)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	return copyStudent(r.store.students[i]), nil
}

func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*models.Student, 0, len(r.store.students))
	for _, s := range r.store.students {
		out = append(out, copyStudent(s))
	}
	return out, nil
}

func (r *StudentRepository) AddEnrollment(ctx context.Context, email, courseCode string) (*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(email)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	student := r.store.students[i]
	if student.IsEnrolled(courseCode) {
		return nil, repositories.ErrAlreadyEnrolled
	}
	student.EnrolledCourses = append(student.EnrolledCourses, courseCode)
	return copyStudent(student), nil
}

// FeedbackRepository is the in-memory FeedbackRepository
type FeedbackRepository struct {
	store *Store
}

func (r *FeedbackRepository) indexOf(id string) int {
	return slices.IndexFunc(r.store.feedback, func(f *models.Feedback) bool { return f.ID == id })
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.indexOf(feedback.ID) >= 0 {
		return repositories.ErrDuplicateKey
	}
	r.store.feedback = append(r.store.feedback, copyFeedback(feedback))
	return nil
}

func (r *FeedbackRepository) ListByCourse(ctx context.Context, courseCode string) ([]*models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := []*models.Feedback{}
	for _, f := range r.store.feedback {
		if f.CourseCode == courseCode {
			out = append(out, copyFeedback(f))
		}
	}
	return out, nil
}

func (r *FeedbackRepository) UpdateText(ctx context.Context, id, text string) (*models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	r.store.feedback[i].Feedback = text
	return copyFeedback(r.store.feedback[i]), nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	r.store.feedback = slices.Delete(r.store.feedback, i, i+1)
	return nil
}

func (r *FeedbackRepository) DeleteByCourse(ctx context.Context, courseCode string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	before := len(r.store.feedback)
	r.store.feedback = slices.DeleteFunc(r.store.feedback, func(f *models.Feedback) bool {
		return f.CourseCode == courseCode
	})
	return int64(before - len(r.store.feedback)), nil
}
