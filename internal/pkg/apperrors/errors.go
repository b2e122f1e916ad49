package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrDuplicateKey     = errors.New("duplicate key")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Store errors
	ErrStore = errors.New("store error")
)

// Enrollment errors
var (
	ErrAlreadyEnrolled = errors.New("student already enrolled in this course")
	ErrNotEnrolled     = errors.New("student is not enrolled in this course")
)

// Entity kinds used by NotFoundError
const (
	EntityCourse   = "course"
	EntityStudent  = "student"
	EntityFeedback = "feedback"
)

// NotFoundError reports a missing entity of a given kind.
type NotFoundError struct {
	Entity string
	Key    string
}

// NewNotFoundError creates a NotFoundError for the entity kind and lookup key.
func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// Error implements error interface
func (e *NotFoundError) Error() string {
	return capitalize(e.Entity) + " not found"
}

// Unwrap lets errors.Is match ErrResourceNotFound
func (e *NotFoundError) Unwrap() error {
	return ErrResourceNotFound
}

// NotFoundEntity returns the entity kind carried by err, or "" when err is not a NotFoundError.
func NotFoundEntity(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Entity
	}
	return ""
}

// NewValidationError creates a validation error with a user-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewDuplicateKeyError creates a duplicate key error with a user-facing message
func NewDuplicateKeyError(message string) error {
	return &CustomError{
		Err:     ErrDuplicateKey,
		Message: message,
	}
}

// NewStoreError wraps a backing-store failure
func NewStoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message meant for API clients. Store failures never leak their cause.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrStore) {
		return "Internal server error"
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	switch {
	case errors.Is(err, ErrAlreadyEnrolled):
		return "Student already enrolled in this course"
	case errors.Is(err, ErrNotEnrolled):
		return "Student is not enrolled in this course"
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return "Resource"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
