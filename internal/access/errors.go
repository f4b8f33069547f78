package access

import "errors"

var (
	ErrNotFound     = errors.New("access: not found")
	ErrConflict     = errors.New("access: already exists")
	ErrInvalidInput = errors.New("access: invalid input")

	// ErrUserNotFound and ErrNoActiveGrants split the two "no access" cases:
	// the user row does not exist versus the user exists but holds zero
	// active grants. Callers that do not care treat both as no access.
	ErrUserNotFound   = errors.New("access: user not found")
	ErrNoActiveGrants = errors.New("access: no active grants")
)
