package repositories

import (
	"context"

	"github.com/edubase/school-service/internal/models"
)

// UserRepository covers the directory's persistence needs. User IDs come from
// the identity provider, so there is no local ID generation and no delete path.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)

	// Create inserts a new user document keyed by user.ID. Returns
	// ErrDuplicateKey when the id is already taken.
	Create(ctx context.Context, user *models.User) error

	// UpdateRole persists a role change. Returns ErrNotFound when the id is
	// unknown.
	UpdateRole(ctx context.Context, id string, role models.UserRole) error

	ExistsByID(ctx context.Context, id string) (bool, error)
}

// CourseRepository owns the courses collection. Enrollment mutations are
// scoped to a single array entry so two teachers editing different students
// never overwrite each other's scores.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error)
	ListByStudent(ctx context.Context, studentID string) ([]*models.Course, error)

	// Delete removes the course document. Returns ErrNotFound when the id is
	// unknown. User records are never touched.
	Delete(ctx context.Context, id string) error

	// AddEnrollment appends an enrollment unless the student already has one
	// in this course, in which case it returns ErrDuplicateEnrollment.
	AddEnrollment(ctx context.Context, courseID string, enrollment models.Enrollment) error

	// RemoveEnrollment drops the student's enrollment. Removing a student who
	// is not enrolled is a no-op; an unknown course returns ErrNotFound.
	RemoveEnrollment(ctx context.Context, courseID, studentID string) error

	// UpdateScores overwrites the three score fields of one enrollment in a
	// single document update; the triple is never partially visible. Returns
	// ErrNotFound when the course or the enrollment does not exist.
	UpdateScores(ctx context.Context, courseID, studentID string, attendance, homework, exam float64) error
}
