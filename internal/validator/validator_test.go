package validator

import "testing"

func TestValidator_CourseCreateRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     CourseCreateRequest
		wantErr bool
	}{
		{name: "valid", req: CourseCreateRequest{Name: "Algebra I", TeacherID: "t1"}},
		{name: "empty name", req: CourseCreateRequest{Name: "", TeacherID: "t1"}, wantErr: true},
		{name: "missing teacher", req: CourseCreateRequest{Name: "Algebra I"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if (errs != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidator_ScoresUpdateRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     ScoresUpdateRequest
		wantErr bool
	}{
		{name: "all zero is valid", req: ScoresUpdateRequest{}},
		{name: "upper bound", req: ScoresUpdateRequest{Attendance: 10, Homework: 10, Exam: 10}},
		{name: "attendance too high", req: ScoresUpdateRequest{Attendance: 10.5}, wantErr: true},
		{name: "negative homework", req: ScoresUpdateRequest{Homework: -1}, wantErr: true},
		{name: "exam out of range", req: ScoresUpdateRequest{Exam: 11}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if (errs != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidator_RoleUpdateRequest(t *testing.T) {
	v := New()

	if errs := v.Validate(&RoleUpdateRequest{Role: "teacher"}); errs != nil {
		t.Errorf("expected teacher role to validate, got %v", errs)
	}
	if errs := v.Validate(&RoleUpdateRequest{Role: "proctor"}); errs == nil {
		t.Error("expected unknown role to fail validation")
	}
	if errs := v.Validate(&RoleUpdateRequest{}); errs == nil {
		t.Error("expected missing role to fail validation")
	}
}

func TestValidator_SignUpRequest(t *testing.T) {
	v := New()

	if errs := v.Validate(&SignUpRequest{Email: "a@b.com", Password: "secret1"}); errs != nil {
		t.Errorf("expected valid signup, got %v", errs)
	}
	if errs := v.Validate(&SignUpRequest{Email: "not-an-email", Password: "secret1"}); errs == nil {
		t.Error("expected invalid email to fail")
	}
	if errs := v.Validate(&SignUpRequest{Email: "a@b.com", Password: "short"}); errs == nil {
		t.Error("expected short password to fail")
	}
}
