package repositories

import "errors"

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert collides with an existing
	// document id.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrDuplicateEnrollment is returned when a student already has an
	// enrollment in the target course.
	ErrDuplicateEnrollment = errors.New("student already enrolled in course")
)

// IsNotFoundError reports whether err means the referenced record is absent.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is a duplicate id or duplicate
// enrollment condition.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrDuplicateEnrollment)
}
