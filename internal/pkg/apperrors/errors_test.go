package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "store hides cause", err: NewStoreError("get course", errors.New("dial tcp: refused")), want: "Internal server error"},
		{name: "not found", err: NewNotFoundError(EntityFeedback, "x"), want: "Feedback not found"},
		{name: "wrapped validation", err: fmt.Errorf("create: %w", NewValidationError("title is required")), want: "title is required"},
		{name: "duplicate", err: NewDuplicateKeyError("Student email must be unique"), want: "Student email must be unique"},
		{name: "already enrolled", err: ErrAlreadyEnrolled, want: "Student already enrolled in this course"},
		{name: "not enrolled", err: ErrNotEnrolled, want: "Student is not enrolled in this course"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, NewValidationError("x"), ErrValidationFailed)
	assert.ErrorIs(t, NewDuplicateKeyError("x"), ErrDuplicateKey)
	assert.ErrorIs(t, NewNotFoundError(EntityCourse, "CS101"), ErrResourceNotFound)
	assert.Equal(t, EntityCourse, NotFoundEntity(fmt.Errorf("wrap: %w", NewNotFoundError(EntityCourse, "CS101"))))
	assert.Empty(t, NotFoundEntity(ErrNotEnrolled))

	err := NewStoreError("list courses", errors.New("timeout"))
	assert.ErrorIs(t, err, ErrStore)
	assert.Equal(t, "store error: list courses: timeout", err.Error())
}
