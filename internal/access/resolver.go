package access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/offineeds/oms/internal/ids"
	"github.com/offineeds/oms/internal/obs"
)

const defaultCacheEntries = 1024

// Resolver translates a user identity into its concrete permission set,
// caching resolved aggregates and handling admin-side mutation of access
// records. Cache entries are shared read-only with callers; staleness is
// bounded by explicit invalidation on every mutation, not by time.
type Resolver struct {
	store Store
	cache *lru.LRU[string, *UserWithAccess]
	log   *zerolog.Logger
	now   func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*resolverConfig)

type resolverConfig struct {
	cacheEntries int
	cacheTTL     time.Duration
	log          *zerolog.Logger
	now          func() time.Time
}

// WithCacheSize bounds the number of cached user aggregates.
func WithCacheSize(n int) ResolverOption {
	return func(c *resolverConfig) {
		if n > 0 {
			c.cacheEntries = n
		}
	}
}

// WithCacheTTL adds a hygiene expiry to cache entries. Zero keeps entries
// until explicitly invalidated or evicted.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(c *resolverConfig) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithLogger overrides the shared logger.
func WithLogger(log *zerolog.Logger) ResolverOption {
	return func(c *resolverConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ResolverOption {
	return func(c *resolverConfig) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewResolver constructs a Resolver over the given store.
func NewResolver(store Store, opts ...ResolverOption) *Resolver {
	cfg := resolverConfig{
		cacheEntries: defaultCacheEntries,
		log:          obs.Logger(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Resolver{
		store: store,
		cache: lru.NewLRU[string, *UserWithAccess](cfg.cacheEntries, nil, cfg.cacheTTL),
		log:   cfg.log,
		now:   cfg.now,
	}
}

// Roles lists active roles ordered by id ascending.
func (r *Resolver) Roles(ctx context.Context) ([]RoleRecord, error) {
	roles, err := r.store.ListRoles(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("list roles")
		return nil, err
	}
	return roles, nil
}

// Modules lists active modules ordered by id ascending.
func (r *Resolver) Modules(ctx context.Context) ([]ModuleRecord, error) {
	modules, err := r.store.ListModules(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("list modules")
		return nil, err
	}
	return modules, nil
}

// UserWithAccess resolves a user id into its aggregate, cache-first. On a
// miss it fetches the user row and the active grants joined with role and
// module records, groups them (role taken from the first grant), caches the
// aggregate and returns it. ErrUserNotFound when the user row is absent;
// ErrNoActiveGrants when the user exists but holds zero active grants.
func (r *Resolver) UserWithAccess(ctx context.Context, userID string) (*UserWithAccess, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	if cached, ok := r.cache.Get(userID); ok {
		obs.CacheHit()
		return cached, nil
	}
	obs.CacheMiss()

	user, err := r.store.User(ctx, userID)
	if err != nil {
		return nil, err
	}

	recs, err := r.store.ListActiveGrants(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: user %s", ErrNoActiveGrants, userID)
	}

	grants := make([]Grant, 0, len(recs))
	for _, rec := range recs {
		grants = append(grants, Grant{Module: rec.Module, Level: rec.Level})
	}
	agg := &UserWithAccess{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		EmployeeID: user.EmployeeID,
		Status:     user.Status,
		Role:       recs[0].Role,
		Modules:    grants,
	}
	r.cache.Add(userID, agg)
	return agg, nil
}

// UserAccessByEmail resolves an email to a user id, then delegates to
// UserWithAccess.
func (r *Resolver) UserAccessByEmail(ctx context.Context, email string) (*UserWithAccess, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	user, err := r.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return r.UserWithAccess(ctx, user.ID)
}

// CreateUserAccess inserts one access record per module id, all tagged with
// the same role, level and creator, then invalidates the user's cache entry.
// The insert is a single statement; a failure inserts nothing.
func (r *Resolver) CreateUserAccess(ctx context.Context, userID string, roleID int64, moduleIDs []int64, level Level, createdBy string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if roleID <= 0 {
		return fmt.Errorf("%w: role_id is required", ErrInvalidInput)
	}
	if len(moduleIDs) == 0 {
		return fmt.Errorf("%w: at least one module is required", ErrInvalidInput)
	}
	if !level.Valid() {
		return fmt.Errorf("%w: unknown access level %q", ErrInvalidInput, level)
	}

	now := r.now().UTC()
	recs := make([]Record, 0, len(moduleIDs))
	for _, moduleID := range moduleIDs {
		recs = append(recs, Record{
			ID:        ids.New(),
			UserID:    userID,
			RoleID:    roleID,
			ModuleID:  moduleID,
			Level:     level,
			Status:    StatusActive,
			CreatedAt: now,
			CreatedBy: createdBy,
			UpdatedAt: now,
			UpdatedBy: createdBy,
		})
	}
	if err := r.store.InsertGrants(ctx, recs); err != nil {
		r.log.Error().Err(err).Str("user_id", userID).Msg("create user access")
		return err
	}
	r.cache.Remove(userID)
	return nil
}

// UpdateUserAccess changes the level of the single (user, module) grant and
// invalidates the user's cache entry.
func (r *Resolver) UpdateUserAccess(ctx context.Context, userID string, moduleID int64, level Level, updatedBy string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if !level.Valid() {
		return fmt.Errorf("%w: unknown access level %q", ErrInvalidInput, level)
	}
	if err := r.store.UpdateGrantLevel(ctx, userID, moduleID, level, updatedBy); err != nil {
		r.log.Error().Err(err).Str("user_id", userID).Int64("module_id", moduleID).Msg("update user access")
		return err
	}
	r.cache.Remove(userID)
	return nil
}

// DeleteUserAccess removes one module grant when moduleID is non-nil, else
// every grant the user holds, and invalidates the user's cache entry.
func (r *Resolver) DeleteUserAccess(ctx context.Context, userID string, moduleID *int64) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if err := r.store.DeleteGrants(ctx, userID, moduleID); err != nil {
		r.log.Error().Err(err).Str("user_id", userID).Msg("delete user access")
		return err
	}
	r.cache.Remove(userID)
	return nil
}

// AllUsersWithAccess lists active users and resolves each sequentially,
// skipping users that resolve to no access. Repeat calls benefit from the
// cache.
func (r *Resolver) AllUsersWithAccess(ctx context.Context) ([]*UserWithAccess, error) {
	users, err := r.store.ListActiveUsers(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("list active users")
		return nil, err
	}
	result := make([]*UserWithAccess, 0, len(users))
	for _, u := range users {
		agg, err := r.UserWithAccess(ctx, u.ID)
		if err != nil {
			if isNoAccess(err) {
				continue
			}
			return nil, err
		}
		result = append(result, agg)
	}
	return result, nil
}

// Invalidate drops one user's cache entry.
func (r *Resolver) Invalidate(userID string) {
	r.cache.Remove(userID)
}

// InvalidateAll drops every cache entry.
func (r *Resolver) InvalidateAll() {
	r.cache.Purge()
}

// DefaultAccessForRole consults the static role policy.
func (r *Resolver) DefaultAccessForRole(role string) DefaultAccess {
	return DefaultAccessForRole(role)
}

func isNoAccess(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrNoActiveGrants)
}
