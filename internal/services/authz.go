package services

import "github.com/edubase/school-service/internal/models"

// Actor is the session context passed explicitly into every service call.
// There is no ambient current-user state.
type Actor struct {
	ID   string
	Role models.UserRole
}

// Action names every guarded operation.
type Action string

const (
	ActionUserList     Action = "user.list"
	ActionUserSetRole  Action = "user.set_role"
	ActionCourseCreate Action = "course.create"
	ActionCourseDelete Action = "course.delete"
	ActionCourseList   Action = "course.list"
	ActionRosterEnroll Action = "roster.enroll"
	ActionRosterUnroll Action = "roster.unenroll"
	ActionRosterView   Action = "roster.view"
	ActionRosterScores Action = "roster.record_scores"
	ActionRosterExport Action = "roster.export"
	ActionGradesRead   Action = "grades.read_own"
)

// Resource scopes an action. Course is set for per-course actions; OwnerID
// is set when the action targets a specific user's own data.
type Resource struct {
	Course  *models.Course
	OwnerID string
}

// Can is the single authorization predicate consulted before every Directory
// and Roster mutation (and the read paths that expose other users' data).
// Role checks live here and nowhere else.
func Can(actor Actor, action Action, res Resource) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true

	case models.RoleTeacher:
		switch action {
		case ActionCourseList:
			// An OwnerID scopes the listing to one teacher's courses;
			// teachers may only request their own.
			return res.OwnerID == "" || res.OwnerID == actor.ID
		case ActionRosterView, ActionRosterScores, ActionRosterExport:
			return res.Course != nil && res.Course.TeacherID == actor.ID
		case ActionGradesRead:
			// Teachers read grades through their course views, not the
			// student report.
			return false
		}
		return false

	case models.RoleStudent:
		return action == ActionGradesRead && res.OwnerID == actor.ID

	default:
		return false
	}
}
