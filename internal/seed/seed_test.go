package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModels "github.com/yigit/coursefeedback/internal/app/models"
	"github.com/yigit/coursefeedback/internal/app/repositories/memory"
	appServices "github.com/yigit/coursefeedback/internal/app/services"
	"github.com/yigit/coursefeedback/internal/pkg/events"
)

func newServices() (appServices.CourseService, appServices.StudentService) {
	repos := memory.NewStore().Repositories()
	pub := events.NewNoopPublisher()
	courses := appServices.NewCourseService(repos.CourseRepository, pub, zerolog.Nop())
	students := appServices.NewStudentService(repos.StudentRepository, courses, pub, zerolog.Nop())
	return courses, students
}

func TestCreateTestDataIsIdempotent(t *testing.T) {
	ctx := context.Background()
	courses, students := newServices()

	first, err := CreateTestData(ctx, courses, students, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, &appModels.Course{Title: TestCourseTitle, Code: TestCourseCode, Description: TestCourseDescription}, first.Course)
	assert.Equal(t, []string{TestCourseCode}, first.Student.EnrolledCourses)

	second, err := CreateTestData(ctx, courses, students, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	allCourses, err := courses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, allCourses, 1)

	allStudents, err := students.List(ctx)
	require.NoError(t, err)
	assert.Len(t, allStudents, 1)
}

func TestCreateTestDataEnrollsExistingStudent(t *testing.T) {
	ctx := context.Background()
	courses, students := newServices()

	_, err := students.Create(ctx, "Someone Else", TestStudentEmail)
	require.NoError(t, err)

	data, err := CreateTestData(ctx, courses, students, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "Someone Else", data.Student.Name)
	assert.True(t, data.Student.IsEnrolled(TestCourseCode))
}

func TestCreateTestDataRestoresEditedCourse(t *testing.T) {
	ctx := context.Background()
	courses, students := newServices()

	_, err := CreateTestData(ctx, courses, students, zerolog.Nop())
	require.NoError(t, err)
	_, err = courses.Update(ctx, TestCourseCode, "Renamed", "Changed by a user")
	require.NoError(t, err)

	data, err := CreateTestData(ctx, courses, students, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, TestCourseTitle, data.Course.Title)
	assert.Equal(t, TestCourseDescription, data.Course.Description)

	stored, err := courses.Get(ctx, TestCourseCode)
	require.NoError(t, err)
	assert.Equal(t, data.Course, stored)
	assert.True(t, data.Student.IsEnrolled(TestCourseCode))
}
