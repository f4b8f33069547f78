package access

import "context"

// Store describes the relational boundary the resolver depends on. The
// production implementation lives in internal/store/pg.
type Store interface {
	// User fetches one user row; ErrUserNotFound when absent.
	User(ctx context.Context, userID string) (UserRow, error)
	// UserByEmail resolves email to a user row; ErrUserNotFound when absent.
	UserByEmail(ctx context.Context, email string) (UserRow, error)
	// ListActiveUsers returns active users ordered by name.
	ListActiveUsers(ctx context.Context) ([]UserRow, error)

	// ListRoles returns active roles ordered by id ascending.
	ListRoles(ctx context.Context) ([]RoleRecord, error)
	// ListModules returns active modules ordered by id ascending.
	ListModules(ctx context.Context) ([]ModuleRecord, error)

	// ListActiveGrants returns the user's active user_access rows joined
	// with their role and module records.
	ListActiveGrants(ctx context.Context, userID string) ([]Record, error)
	// InsertGrants inserts the given rows in one statement; no partial retry.
	InsertGrants(ctx context.Context, recs []Record) error
	// UpdateGrantLevel updates the single (user, module) row's level and
	// audit fields; ErrNotFound when no row matches.
	UpdateGrantLevel(ctx context.Context, userID string, moduleID int64, level Level, updatedBy string) error
	// DeleteGrants removes one module grant when moduleID is non-nil, else
	// every grant the user holds.
	DeleteGrants(ctx context.Context, userID string, moduleID *int64) error
}
