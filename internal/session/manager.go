// Package session holds the authenticated user's identity and resolved
// access for the lifetime of a process, mirrored to a snapshot store so a
// restart can pick up where it left off.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/offineeds/oms/internal/access"
	"github.com/offineeds/oms/internal/identity"
	"github.com/offineeds/oms/internal/obs"
)

// MsgNetworkError is the generic failure message surfaced when the identity
// provider could not be reached at all.
const MsgNetworkError = "Network error occurred"

// Result is the outcome of a login or registration attempt. Error carries a
// user-facing message and is empty on success. A successful login also
// carries the identity and token issued for that attempt, so callers serving
// multiple clients can answer from the attempt itself rather than reading
// the shared last-writer-wins state back.
type Result struct {
	Success     bool               `json:"success"`
	Error       string             `json:"error,omitempty"`
	User        *identity.Identity `json:"user,omitempty"`
	AccessToken string             `json:"access_token,omitempty"`
}

// UserAccess is the flattened access summary kept alongside the identity. It
// is what the snapshot store persists under KeyUserAccess.
type UserAccess struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	Role          string        `json:"role"`
	AccessLevel   access.Level  `json:"access_level"`
	ResourceScope []string      `json:"resource_scope"`
	Status        access.Status `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type userSnapshot struct {
	User        identity.Identity `json:"user"`
	AccessToken string            `json:"access_token"`
}

// Manager owns session state. All reads and mutations go through its
// methods; mutation updates memory and the snapshot store in lockstep.
type Manager struct {
	provider identity.Provider
	snaps    SnapshotStore
	log      *zerolog.Logger

	mu            sync.RWMutex
	user          *identity.Identity
	token         string
	userAccess    *UserAccess
	role          string
	level         access.Level
	resourceScope []string
	status        access.Status
	authenticated bool
	loading       bool
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(log *zerolog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// NewManager creates a session manager and restores any persisted state from
// the snapshot store. Restored state is provisional until CheckAuth confirms
// the token is still valid.
func NewManager(provider identity.Provider, snaps SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		provider: provider,
		snaps:    snaps,
		log:      obs.Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.restore()
	return m
}

func (m *Manager) restore() {
	if raw, err := m.snaps.Load(KeyUser); err == nil {
		var snap userSnapshot
		if json.Unmarshal(raw, &snap) == nil && snap.User.ID != "" {
			m.user = &snap.User
			m.token = snap.AccessToken
			m.authenticated = true
		}
	}
	if raw, err := m.snaps.Load(KeyUserAccess); err == nil {
		var ua UserAccess
		if json.Unmarshal(raw, &ua) == nil && ua.UserID != "" {
			m.userAccess = &ua
			m.applyAccessLocked(&ua)
		}
	}
}

// Login authenticates against the identity provider. Provider rejections are
// reported through Result.Error with the provider's message; transport
// failures collapse to MsgNetworkError.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	m.setLoading(true)
	defer m.setLoading(false)

	sess, err := m.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		if apiErr, ok := identity.AsAPIError(err); ok {
			return Result{Error: apiErr.Message}
		}
		m.log.Error().Err(err).Str("email", email).Msg("login failed")
		return Result{Error: MsgNetworkError}
	}
	if sess.User.ID == "" {
		return Result{Error: identity.MsgInvalidCredentials}
	}
	m.SetUser(&sess.User, sess.AccessToken)
	user := sess.User
	return Result{Success: true, User: &user, AccessToken: sess.AccessToken}
}

// Register creates an account with the identity provider. It never mutates
// session state; a registered user still has to sign in.
func (m *Manager) Register(ctx context.Context, email, password, redirectTo string) Result {
	m.setLoading(true)
	defer m.setLoading(false)

	if _, err := m.provider.SignUp(ctx, email, password, redirectTo); err != nil {
		if apiErr, ok := identity.AsAPIError(err); ok {
			return Result{Error: apiErr.Message}
		}
		m.log.Error().Err(err).Str("email", email).Msg("registration failed")
		return Result{Error: MsgNetworkError}
	}
	return Result{Success: true}
}

// Logout signs out from the provider and resets local state. The reset
// happens even when the provider call fails: a stale remote session must
// never keep the local one alive.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	if token != "" {
		if err := m.provider.SignOut(ctx, token); err != nil {
			m.log.Warn().Err(err).Msg("provider sign-out failed, clearing local session anyway")
		}
	}
	m.reset()
}

// CheckAuth validates the restored token against the provider. An invalid or
// expired token resets the session to anonymous.
func (m *Manager) CheckAuth(ctx context.Context) {
	m.setLoading(true)
	defer m.setLoading(false)

	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		m.reset()
		return
	}

	sess, err := m.provider.GetSession(ctx, token)
	if err != nil || sess.User.ID == "" {
		if err != nil {
			m.log.Debug().Err(err).Msg("session restore failed")
		}
		m.reset()
		return
	}
	m.SetUser(&sess.User, token)
}

// SetUser replaces the session identity. A nil user resets the session.
func (m *Manager) SetUser(user *identity.Identity, token string) {
	if user == nil {
		m.reset()
		return
	}
	m.mu.Lock()
	m.user = user
	m.token = token
	m.authenticated = true
	m.mu.Unlock()
	m.persistUser(&userSnapshot{User: *user, AccessToken: token})
}

// SetUserAccess replaces the access summary and its derived fields. Passing
// nil clears the summary, role, level, scope and status in one step.
func (m *Manager) SetUserAccess(ua *UserAccess) {
	m.mu.Lock()
	m.userAccess = ua
	if ua == nil {
		m.role = ""
		m.level = ""
		m.resourceScope = nil
		m.status = ""
	} else {
		m.applyAccessLocked(ua)
	}
	m.mu.Unlock()
	m.persistAccess(ua)
}

func (m *Manager) applyAccessLocked(ua *UserAccess) {
	m.role = ua.Role
	m.level = ua.AccessLevel
	m.resourceScope = ua.ResourceScope
	m.status = ua.Status
}

// SetRole updates the cached role.
func (m *Manager) SetRole(role string) {
	m.mutateAccess(func(ua *UserAccess) { ua.Role = role })
	m.mu.Lock()
	m.role = role
	m.mu.Unlock()
}

// SetAccessLevel updates the cached access level.
func (m *Manager) SetAccessLevel(level access.Level) {
	m.mutateAccess(func(ua *UserAccess) { ua.AccessLevel = level })
	m.mu.Lock()
	m.level = level
	m.mu.Unlock()
}

// SetResourceScope updates the cached resource scope.
func (m *Manager) SetResourceScope(scope []string) {
	m.mutateAccess(func(ua *UserAccess) { ua.ResourceScope = scope })
	m.mu.Lock()
	m.resourceScope = scope
	m.mu.Unlock()
}

// SetStatus updates the cached account status.
func (m *Manager) SetStatus(status access.Status) {
	m.mutateAccess(func(ua *UserAccess) { ua.Status = status })
	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

// mutateAccess applies fn to the stored summary, if any, and re-persists it
// so the snapshot mirrors memory.
func (m *Manager) mutateAccess(fn func(*UserAccess)) {
	m.mu.Lock()
	if m.userAccess == nil {
		m.mu.Unlock()
		return
	}
	fn(m.userAccess)
	snap := *m.userAccess
	m.mu.Unlock()
	m.persistAccess(&snap)
}

// CanAccess reports whether the session may see the named module. It answers
// from the session's role via the static role policy and always requires an
// authenticated, active session.
func (m *Manager) CanAccess(module string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.authenticated || m.status != access.StatusActive {
		return false
	}
	return access.CanAccessComponent(m.role, module)
}

// HasPermission reports whether the session holds at least the given level
// on the named module.
func (m *Manager) HasPermission(module string, level access.Level) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.authenticated || m.status != access.StatusActive {
		return false
	}
	return access.PolicyHasPermission(m.role, module, level)
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// IsLoading reports whether an auth operation is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// User returns the current identity, or nil when anonymous.
func (m *Manager) User() *identity.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token returns the current access token, empty when anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// UserAccess returns the current access summary, or nil when unresolved.
func (m *Manager) UserAccess() *UserAccess {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.userAccess == nil {
		return nil
	}
	ua := *m.userAccess
	return &ua
}

// Role returns the cached role name, empty when unresolved.
func (m *Manager) Role() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role
}

// AccessLevel returns the cached access level, empty when unresolved.
func (m *Manager) AccessLevel() access.Level {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.level
}

// ResourceScope returns the cached resource scope.
func (m *Manager) ResourceScope() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.resourceScope...)
}

// Status returns the cached account status, empty when unresolved.
func (m *Manager) Status() access.Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// reset clears all session state and removes both persisted keys. Snapshot
// errors are logged, not returned: a failed delete must not block logout.
func (m *Manager) reset() {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.userAccess = nil
	m.role = ""
	m.level = ""
	m.resourceScope = nil
	m.status = ""
	m.authenticated = false
	m.mu.Unlock()

	if err := m.snaps.Delete(KeyUser); err != nil {
		m.log.Warn().Err(err).Msg("drop user snapshot failed")
	}
	if err := m.snaps.Delete(KeyUserAccess); err != nil {
		m.log.Warn().Err(err).Msg("drop user access snapshot failed")
	}
}

func (m *Manager) persistUser(snap *userSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		m.log.Error().Err(err).Msg("encode user snapshot failed")
		return
	}
	if err := m.snaps.Save(KeyUser, data); err != nil {
		m.log.Warn().Err(err).Msg("persist user snapshot failed")
	}
}

func (m *Manager) persistAccess(ua *UserAccess) {
	if ua == nil {
		if err := m.snaps.Delete(KeyUserAccess); err != nil {
			m.log.Warn().Err(err).Msg("drop user access snapshot failed")
		}
		return
	}
	data, err := json.Marshal(ua)
	if err != nil {
		m.log.Error().Err(err).Msg("encode user access snapshot failed")
		return
	}
	if err := m.snaps.Save(KeyUserAccess, data); err != nil {
		m.log.Warn().Err(err).Msg("persist user access snapshot failed")
	}
}
