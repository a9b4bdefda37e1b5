package services

import (
	"errors"

	"github.com/edubase/school-service/internal/validator"
)

var (
	// ErrNotFound means a referenced course or user id does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrPermissionDenied means the central policy rejected the action for
	// this actor.
	ErrPermissionDenied = errors.New("permission denied")
)

// NewValidationError builds a single-field validation failure in the same
// shape the request validator produces.
func NewValidationError(field, message string, value interface{}) error {
	return validator.ValidationErrors{{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    "business_logic",
	}}
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single validator.ValidationError
	return errors.As(err, &single)
}
