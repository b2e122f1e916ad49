package validation

import (
	"fmt"
	"strings"

	"github.com/yigit/coursefeedback/internal/pkg/apperrors"
)

// StringValidation checks that a named string value is present
type StringValidation struct {
	Field string
	Value string
}

// NewStringValidation creates a new required string validation
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{
		Field: field,
		Value: value,
	}
}

// Validate returns a validation error when the value is empty after trimming, or nil.
func (v *StringValidation) Validate() error {
	if strings.TrimSpace(v.Value) == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s is required", v.Field))
	}
	return nil
}

// All runs every validation and returns the first failure.
func All(validations ...*StringValidation) error {
	for _, v := range validations {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
