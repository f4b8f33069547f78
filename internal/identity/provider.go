// Package identity wraps the external identity provider that owns credential
// verification and session issuance. The rest of the service only sees the
// Provider interface; error presence is the sole failure signal.
package identity

import (
	"context"
	"errors"
	"time"
)

// Identity is the opaque external user record mirrored into session state.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a live authenticated session issued by the provider.
type Session struct {
	User        Identity  `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Provider is the identity-provider boundary.
type Provider interface {
	// SignInWithPassword verifies credentials and issues a session.
	SignInWithPassword(ctx context.Context, email, password string) (Session, error)
	// SignUp creates an account and requests a confirmation-email flow
	// redirecting back to redirectTo. It does not authenticate the caller.
	SignUp(ctx context.Context, email, password, redirectTo string) (Identity, error)
	// SignOut invalidates the session behind the token, best effort.
	SignOut(ctx context.Context, token string) error
	// GetSession validates a previously issued token and returns the live
	// session, or an error when none exists.
	GetSession(ctx context.Context, token string) (Session, error)
}

// Messages surfaced by providers for common failures. The session layer and
// UI branch on these strings, so they match the hosted provider verbatim.
const (
	MsgInvalidCredentials = "Invalid login credentials"
	MsgEmailNotConfirmed  = "Email not confirmed"
	MsgAlreadyRegistered  = "User already registered"
)

// APIError is a failure the provider itself reported, carrying its
// human-readable message. Transport and unexpected failures are plain errors
// and are normalized elsewhere.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// AsAPIError unwraps err into an APIError when the provider produced it.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
