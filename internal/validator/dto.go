package validator

import "github.com/edubase/school-service/internal/models"

// SignUpRequest registers a principal with the identity provider.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// SignInRequest authenticates with email and password.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProviderSignInRequest completes a federated OAuth sign-in.
type ProviderSignInRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state"`
}

// CourseCreateRequest creates a course owned by a teacher.
type CourseCreateRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	TeacherID string `json:"teacher_id" validate:"required"`
}

// RoleUpdateRequest changes a directory record's role.
type RoleUpdateRequest struct {
	Role models.UserRole `json:"role" validate:"required,user_role"`
}

// ScoresUpdateRequest overwrites the three score components of one
// enrollment. All three fields are always written together.
type ScoresUpdateRequest struct {
	Attendance float64 `json:"attendance" validate:"score_range"`
	Homework   float64 `json:"homework" validate:"score_range"`
	Exam       float64 `json:"exam" validate:"score_range"`
}
