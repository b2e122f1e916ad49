package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursefeedback/internal/app/models"
	"github.com/yigit/coursefeedback/internal/app/repositories"
)

func TestCourseRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	require.NoError(t, repos.CourseRepository.Create(ctx, &models.Course{Title: "T", Code: "CS101", Description: "D"}))

	got, err := repos.CourseRepository.GetByCode(ctx, "CS101")
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := repos.CourseRepository.GetByCode(ctx, "CS101")
	require.NoError(t, err)
	assert.Equal(t, "T", again.Title)
}

func TestStudentRepositoryAddEnrollment(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	require.NoError(t, repos.StudentRepository.Create(ctx, &models.Student{Name: "A", Email: "a@x.com"}))

	student, err := repos.StudentRepository.AddEnrollment(ctx, "a@x.com", "CS101")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, student.EnrolledCourses)

	_, err = repos.StudentRepository.AddEnrollment(ctx, "a@x.com", "CS101")
	assert.ErrorIs(t, err, repositories.ErrAlreadyEnrolled)

	_, err = repos.StudentRepository.AddEnrollment(ctx, "nobody@x.com", "CS101")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestConcurrentEnrollmentAdmitsOne(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	require.NoError(t, repos.StudentRepository.Create(ctx, &models.Student{Name: "A", Email: "a@x.com"}))

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repos.StudentRepository.AddEnrollment(ctx, "a@x.com", "CS101"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	student, err := repos.StudentRepository.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, student.EnrolledCourses)
}

func TestFeedbackRepositoryDeleteByCourse(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Repositories().FeedbackRepository

	for _, f := range []*models.Feedback{
		{ID: "1", StudentEmail: "a@x.com", CourseCode: "CS101", Feedback: "one"},
		{ID: "2", StudentEmail: "b@x.com", CourseCode: "CS101", Feedback: "two"},
		{ID: "3", StudentEmail: "a@x.com", CourseCode: "MA201", Feedback: "three"},
	} {
		require.NoError(t, repo.Create(ctx, f))
	}

	n, err := repo.DeleteByCourse(ctx, "CS101")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = repo.DeleteByCourse(ctx, "CS101")
	require.NoError(t, err)
	assert.Zero(t, n)

	remaining, err := repo.ListByCourse(ctx, "MA201")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestRepositoriesHonourCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repos := NewStore().Repositories()

	_, err := repos.CourseRepository.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
