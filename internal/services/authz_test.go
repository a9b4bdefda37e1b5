package services

import (
	"testing"

	"github.com/edubase/school-service/internal/models"
)

func TestCan(t *testing.T) {
	course := &models.Course{TeacherID: "teacher-1", Name: "Biology"}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		res    Resource
		want   bool
	}{
		{
			name:   "admin can list users",
			actor:  Actor{ID: "admin-1", Role: models.RoleAdmin},
			action: ActionUserList,
			want:   true,
		},
		{
			name:   "admin can change roles",
			actor:  Actor{ID: "admin-1", Role: models.RoleAdmin},
			action: ActionUserSetRole,
			want:   true,
		},
		{
			name:   "admin can delete any course",
			actor:  Actor{ID: "admin-1", Role: models.RoleAdmin},
			action: ActionCourseDelete,
			res:    Resource{Course: course},
			want:   true,
		},
		{
			name:   "teacher cannot list users",
			actor:  Actor{ID: "teacher-1", Role: models.RoleTeacher},
			action: ActionUserList,
			want:   false,
		},
		{
			name:   "teacher cannot create courses",
			actor:  Actor{ID: "teacher-1", Role: models.RoleTeacher},
			action: ActionCourseCreate,
			want:   false,
		},
		{
			name:   "teacher can list courses",
			actor:  Actor{ID: "teacher-1", Role: models.RoleTeacher},
			action: ActionCourseList,
			want:   true,
		},
		{
			name:   "teacher can list own courses",
			actor:  Actor{ID: "teacher-1", Role: models.RoleTeacher},
			action: ActionCourseList,
			res:    Resource{OwnerID: "teacher-1"},
			want:   true,
		},
		{
			name:   "teacher cannot list another teacher's courses",
			actor:  Actor{ID: "teacher-2", Role: models.RoleTeacher},
			action: ActionCourseList,
			res:    Resource{OwnerID: "teacher-1"},
			want:   false,
		},
		{
			name:   "teacher can view own course roster",
			actor:  Actor{ID: "teacher-1", Role: models.RoleTeacher},
			action: ActionRosterView,
			res:    Resource{Course: course},
			want:   true,
		},
		{
			name:   "teacher cannot view another teacher's roster",
			actor:  Actor{ID: "teacher-2", Role: models.RoleTeacher},
			action: ActionRosterView,
			res:    Resource{Course: course},
			want:   false,
		},
		{
			name:   "teacher can record scores in own course",
			actor:  Actor{ID: "teacher-1", Role: models.RoleTeacher},
			action: ActionRosterScores,
			res:    Resource{Course: course},
			want:   true,
		},
		{
			name:   "teacher cannot record scores in someone else's course",
			actor:  Actor{ID: "teacher-2", Role: models.RoleTeacher},
			action: ActionRosterScores,
			res:    Resource{Course: course},
			want:   false,
		},
		{
			name:   "teacher can export own course",
			actor:  Actor{ID: "teacher-1", Role: models.RoleTeacher},
			action: ActionRosterExport,
			res:    Resource{Course: course},
			want:   true,
		},
		{
			name:   "teacher cannot enroll students",
			actor:  Actor{ID: "teacher-1", Role: models.RoleTeacher},
			action: ActionRosterEnroll,
			res:    Resource{Course: course},
			want:   false,
		},
		{
			name:   "student can read own grades",
			actor:  Actor{ID: "student-1", Role: models.RoleStudent},
			action: ActionGradesRead,
			res:    Resource{OwnerID: "student-1"},
			want:   true,
		},
		{
			name:   "student cannot read another student's grades",
			actor:  Actor{ID: "student-1", Role: models.RoleStudent},
			action: ActionGradesRead,
			res:    Resource{OwnerID: "student-2"},
			want:   false,
		},
		{
			name:   "student cannot list courses",
			actor:  Actor{ID: "student-1", Role: models.RoleStudent},
			action: ActionCourseList,
			want:   false,
		},
		{
			name:   "student cannot record scores",
			actor:  Actor{ID: "student-1", Role: models.RoleStudent},
			action: ActionRosterScores,
			res:    Resource{Course: course},
			want:   false,
		},
		{
			name:   "unknown role gets nothing",
			actor:  Actor{ID: "x", Role: models.UserRole("ghost")},
			action: ActionCourseList,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(tt.actor, tt.action, tt.res); got != tt.want {
				t.Errorf("Can(%v, %s) = %v, want %v", tt.actor, tt.action, got, tt.want)
			}
		})
	}
}
