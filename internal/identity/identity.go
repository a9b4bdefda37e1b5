// Package identity wraps the external identity provider. Only the externally
// observable contract lives here: sign up, sign in, token parsing, sign out
// and session observation. Password hashing, provider linking and the rest of
// the protocol stay inside the provider.
package identity

import (
	"context"
	"errors"
	"fmt"
)

// UserHandle is the stable identity the provider asserts for a principal.
type UserHandle struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// AuthError wraps identity provider failures: bad credentials, provider
// conflicts, malformed tokens. It is surfaced to the caller directly and
// never retried.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is an identity provider failure.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// Session is the result of a successful authentication.
type Session struct {
	Handle      UserHandle `json:"handle"`
	AccessToken string     `json:"access_token"`
}

// Gateway is the consumed identity provider boundary.
type Gateway interface {
	// SignUp registers a new principal with the provider and signs it in.
	SignUp(ctx context.Context, email, password string) (*Session, error)

	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignInWithProvider completes a federated (OAuth code) sign-in.
	SignInWithProvider(ctx context.Context, code, state string) (*Session, error)

	// SignOut ends the principal's session on this service: observers are
	// notified and the client discards its token. The token itself is not
	// revoked at the provider and stays valid until it expires.
	SignOut(ctx context.Context, handle UserHandle) error

	// ParseToken validates a bearer token and returns the handle it asserts.
	ParseToken(token string) (*UserHandle, error)

	// ObserveSession registers a callback invoked with the new handle (nil
	// on sign-out) on every session change. The returned function removes
	// the observer.
	ObserveSession(callback func(*UserHandle)) (cancel func())
}
