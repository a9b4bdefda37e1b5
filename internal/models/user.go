package models

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// ValidRole reports whether r is a role the directory accepts.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// User is a directory record. The ID comes from the identity provider and is
// used verbatim as the document key; it is never generated locally.
//
// Stored shape: users/{id} = {email, name, role, createdAt}. The bson field
// names are fixed for compatibility with existing stored data.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	DisplayName string    `json:"display_name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Role        UserRole  `json:"role" bson:"role"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt,omitempty"`
}
