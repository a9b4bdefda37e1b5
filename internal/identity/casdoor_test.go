package identity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/edubase/school-service/internal/config"
)

func TestObserveSession(t *testing.T) {
	g := NewCasdoorGateway(config.CasdoorConfig{Endpoint: "http://localhost:8000"})

	var got []*UserHandle
	cancel := g.ObserveSession(func(h *UserHandle) { got = append(got, h) })

	handle := &UserHandle{ID: "u1"}
	g.notify(handle)
	g.notify(nil) // sign-out

	if len(got) != 2 {
		t.Fatalf("observer saw %d notifications, want 2", len(got))
	}
	if got[0] == nil || got[0].ID != "u1" {
		t.Errorf("first notification = %v, want handle u1", got[0])
	}
	if got[1] != nil {
		t.Errorf("second notification = %v, want nil for sign-out", got[1])
	}

	cancel()
	g.notify(handle)
	if len(got) != 2 {
		t.Errorf("observer notified after cancel, saw %d", len(got))
	}
}

func TestIsAuthError(t *testing.T) {
	authErr := &AuthError{Op: "signin", Err: errors.New("bad credentials")}

	if !IsAuthError(authErr) {
		t.Error("IsAuthError(AuthError) = false")
	}
	if !IsAuthError(fmt.Errorf("wrapped: %w", authErr)) {
		t.Error("IsAuthError(wrapped AuthError) = false")
	}
	if IsAuthError(errors.New("plain")) {
		t.Error("IsAuthError(plain error) = true")
	}
	if !errors.Is(fmt.Errorf("outer: %w", authErr), authErr) {
		t.Error("AuthError does not unwrap")
	}
}

func TestUsernameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"ana@example.com", "ana"},
		{"no-at-sign", "no-at-sign"},
		{"@leading.at", "@leading.at"},
	}
	for _, tt := range tests {
		if got := usernameFromEmail(tt.email); got != tt.want {
			t.Errorf("usernameFromEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
