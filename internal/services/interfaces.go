package services

import (
	"context"

	"github.com/edubase/school-service/internal/models"
	"github.com/edubase/school-service/internal/validator"
)

// Request DTOs are defined alongside the validation rules and aliased here
// so callers only depend on the services package.
type CreateCourseRequest = validator.CourseCreateRequest
type RecordScoresRequest = validator.ScoresUpdateRequest
type RoleUpdateRequest = validator.RoleUpdateRequest

// EnrollmentEntry joins an enrollment with the resolved student profile.
// Enrollments whose directory entry no longer exists are omitted from
// listings entirely, so Student is always non-nil.
type EnrollmentEntry struct {
	Student    *models.User      `json:"student"`
	Enrollment models.Enrollment `json:"enrollment"`
}

// StudentGradeEntry is one row of a student's own grade report.
type StudentGradeEntry struct {
	CourseID   string            `json:"courseId"`
	CourseName string            `json:"courseName"`
	Enrollment models.Enrollment `json:"enrollment"`
	FinalScore float64           `json:"finalScore"`
}

// DirectoryService manages user profiles and role assignment.
type DirectoryService interface {
	// RegisterIfAbsent creates the profile for a freshly authenticated
	// identity if it does not exist yet. Idempotent.
	RegisterIfAbsent(ctx context.Context, userID, email, displayName string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context, actor Actor) ([]models.User, error)
	ListUsersByRole(ctx context.Context, actor Actor, role models.UserRole) ([]models.User, error)
	SetRole(ctx context.Context, actor Actor, userID string, role models.UserRole) error
}

// RosterService manages courses, enrollments and score recording.
type RosterService interface {
	CreateCourse(ctx context.Context, actor Actor, req *CreateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, actor Actor, courseID string) error
	ListCourses(ctx context.Context, actor Actor) ([]models.Course, error)
	ListCoursesForTeacher(ctx context.Context, actor Actor, teacherID string) ([]models.Course, error)
	ListCoursesForStudent(ctx context.Context, actor Actor, studentID string) ([]StudentGradeEntry, error)
	ListEnrollments(ctx context.Context, actor Actor, courseID string) ([]EnrollmentEntry, error)
	EnrollStudent(ctx context.Context, actor Actor, courseID, studentID string) error
	UnenrollStudent(ctx context.Context, actor Actor, courseID, studentID string) error
	RecordScores(ctx context.Context, actor Actor, courseID, studentID string, req *RecordScoresRequest) error
}

// ExportService renders course grade sheets for download.
type ExportService interface {
	ExportGradeSheet(ctx context.Context, actor Actor, courseID string) (data []byte, filename string, err error)
}
