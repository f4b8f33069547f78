package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offineeds/oms/internal/access"
	"github.com/offineeds/oms/internal/identity"
)

type fakeProvider struct {
	session    identity.Session
	signInErr  error
	signUpErr  error
	signOutErr error
	getErr     error

	signOutCalls int
	lastRedirect string
}

func (p *fakeProvider) SignInWithPassword(ctx context.Context, email, password string) (identity.Session, error) {
	if p.signInErr != nil {
		return identity.Session{}, p.signInErr
	}
	return p.session, nil
}

func (p *fakeProvider) SignUp(ctx context.Context, email, password, redirectTo string) (identity.Identity, error) {
	p.lastRedirect = redirectTo
	if p.signUpErr != nil {
		return identity.Identity{}, p.signUpErr
	}
	return identity.Identity{ID: "new-user", Email: email}, nil
}

func (p *fakeProvider) SignOut(ctx context.Context, token string) error {
	p.signOutCalls++
	return p.signOutErr
}

func (p *fakeProvider) GetSession(ctx context.Context, token string) (identity.Session, error) {
	if p.getErr != nil {
		return identity.Session{}, p.getErr
	}
	return p.session, nil
}

func activeAccess(userID string) *UserAccess {
	now := time.Now().UTC()
	return &UserAccess{
		ID:            "ua-1",
		UserID:        userID,
		Role:          "editor",
		AccessLevel:   access.LevelWrite,
		ResourceScope: []string{"production", "inventory"},
		Status:        access.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestLoginSuccessPersistsIdentity(t *testing.T) {
	provider := &fakeProvider{session: identity.Session{
		User:        identity.Identity{ID: "u-1", Email: "editor@example.com"},
		AccessToken: "tok-1",
	}}
	snaps := NewMemStore()
	m := NewManager(provider, snaps)

	res := m.Login(context.Background(), "editor@example.com", "secret1")
	require.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-1", m.Token())
	assert.True(t, snaps.Has(KeyUser))
}

func TestLoginResultCarriesOwnSession(t *testing.T) {
	provider := &fakeProvider{session: identity.Session{
		User:        identity.Identity{ID: "u-1", Email: "first@example.com"},
		AccessToken: "tok-first",
	}}
	m := NewManager(provider, NewMemStore())

	first := m.Login(context.Background(), "first@example.com", "secret1")
	require.True(t, first.Success)

	// A later login overwrites the shared state; the earlier Result must
	// still describe the session issued for its own attempt.
	provider.session = identity.Session{
		User:        identity.Identity{ID: "u-2", Email: "second@example.com"},
		AccessToken: "tok-second",
	}
	second := m.Login(context.Background(), "second@example.com", "secret2")
	require.True(t, second.Success)

	require.NotNil(t, first.User)
	assert.Equal(t, "u-1", first.User.ID)
	assert.Equal(t, "tok-first", first.AccessToken)
	assert.Equal(t, "u-2", second.User.ID)
	assert.Equal(t, "tok-second", second.AccessToken)
	assert.Equal(t, "tok-second", m.Token())
}

func TestLoginProviderRejection(t *testing.T) {
	provider := &fakeProvider{signInErr: &identity.APIError{Status: 400, Message: identity.MsgInvalidCredentials}}
	m := NewManager(provider, NewMemStore())

	res := m.Login(context.Background(), "editor@example.com", "wrong")
	assert.False(t, res.Success)
	assert.Equal(t, identity.MsgInvalidCredentials, res.Error)
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())
}

func TestLoginTransportFailure(t *testing.T) {
	provider := &fakeProvider{signInErr: errors.New("dial tcp: connection refused")}
	m := NewManager(provider, NewMemStore())

	res := m.Login(context.Background(), "editor@example.com", "secret1")
	assert.False(t, res.Success)
	assert.Equal(t, MsgNetworkError, res.Error)
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	provider := &fakeProvider{}
	m := NewManager(provider, NewMemStore())

	res := m.Register(context.Background(), "new@example.com", "secret1", "/login")
	require.True(t, res.Success)
	assert.Equal(t, "/login", provider.lastRedirect)
	assert.False(t, m.IsAuthenticated())
}

func TestRegisterDuplicate(t *testing.T) {
	provider := &fakeProvider{signUpErr: &identity.APIError{Status: 422, Message: identity.MsgAlreadyRegistered}}
	m := NewManager(provider, NewMemStore())

	res := m.Register(context.Background(), "dup@example.com", "secret1", "")
	assert.False(t, res.Success)
	assert.Equal(t, identity.MsgAlreadyRegistered, res.Error)
}

func TestLogoutClearsStateEvenWhenProviderFails(t *testing.T) {
	provider := &fakeProvider{
		session:    identity.Session{User: identity.Identity{ID: "u-1"}, AccessToken: "tok-1"},
		signOutErr: errors.New("gateway timeout"),
	}
	snaps := NewMemStore()
	m := NewManager(provider, snaps)
	require.True(t, m.Login(context.Background(), "a@b.c", "secret1").Success)
	m.SetUserAccess(activeAccess("u-1"))
	require.True(t, snaps.Has(KeyUserAccess))

	m.Logout(context.Background())

	assert.Equal(t, 1, provider.signOutCalls)
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())
	assert.Nil(t, m.UserAccess())
	assert.False(t, snaps.Has(KeyUser))
	assert.False(t, snaps.Has(KeyUserAccess))
}

func TestSetUserAccessNilClearsDerivedFields(t *testing.T) {
	m := NewManager(&fakeProvider{}, NewMemStore())
	m.SetUserAccess(activeAccess("u-1"))
	require.Equal(t, "editor", m.Role())
	require.Equal(t, access.LevelWrite, m.AccessLevel())

	m.SetUserAccess(nil)

	assert.Empty(t, m.Role())
	assert.Empty(t, m.AccessLevel())
	assert.Empty(t, m.ResourceScope())
	assert.Empty(t, m.Status())
	assert.Nil(t, m.UserAccess())
}

func TestSettersKeepSnapshotInLockstep(t *testing.T) {
	snaps := NewMemStore()
	m := NewManager(&fakeProvider{}, snaps)
	m.SetUserAccess(activeAccess("u-1"))

	m.SetRole("admin")
	m.SetAccessLevel(access.LevelAdmin)
	m.SetStatus(access.StatusSuspended)

	restored := NewManager(&fakeProvider{}, snaps)
	ua := restored.UserAccess()
	require.NotNil(t, ua)
	assert.Equal(t, "admin", ua.Role)
	assert.Equal(t, access.LevelAdmin, ua.AccessLevel)
	assert.Equal(t, access.StatusSuspended, ua.Status)
}

func TestCapabilityChecksRequireActiveSession(t *testing.T) {
	m := NewManager(&fakeProvider{session: identity.Session{
		User:        identity.Identity{ID: "u-1"},
		AccessToken: "tok-1",
	}}, NewMemStore())

	// Anonymous sessions hold no capabilities regardless of role config.
	assert.False(t, m.CanAccess(access.ModuleDashboard))

	require.True(t, m.Login(context.Background(), "a@b.c", "secret1").Success)
	m.SetUserAccess(activeAccess("u-1"))

	assert.True(t, m.CanAccess(access.ModuleJobCards))
	assert.True(t, m.HasPermission(access.ModuleJobCards, access.LevelWrite))
	assert.False(t, m.HasPermission(access.ModuleJobCards, access.LevelAdmin))
	assert.False(t, m.CanAccess(access.ModuleAdmin))

	m.SetStatus(access.StatusSuspended)
	assert.False(t, m.CanAccess(access.ModuleJobCards))
	assert.False(t, m.HasPermission(access.ModuleJobCards, access.LevelRead))
}

func TestCheckAuthRestoresValidSession(t *testing.T) {
	provider := &fakeProvider{session: identity.Session{
		User:        identity.Identity{ID: "u-1", Email: "a@b.c"},
		AccessToken: "tok-1",
	}}
	snaps := NewMemStore()
	first := NewManager(provider, snaps)
	require.True(t, first.Login(context.Background(), "a@b.c", "secret1").Success)

	restored := NewManager(provider, snaps)
	restored.CheckAuth(context.Background())

	assert.True(t, restored.IsAuthenticated())
	require.NotNil(t, restored.User())
	assert.Equal(t, "u-1", restored.User().ID)
}

func TestCheckAuthRejectsStaleToken(t *testing.T) {
	provider := &fakeProvider{session: identity.Session{
		User:        identity.Identity{ID: "u-1"},
		AccessToken: "tok-1",
	}}
	snaps := NewMemStore()
	first := NewManager(provider, snaps)
	require.True(t, first.Login(context.Background(), "a@b.c", "secret1").Success)

	provider.getErr = &identity.APIError{Status: 401, Message: "invalid token"}
	restored := NewManager(provider, snaps)
	restored.CheckAuth(context.Background())

	assert.False(t, restored.IsAuthenticated())
	assert.False(t, snaps.Has(KeyUser))
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(KeyUser, []byte(`{"user":{"id":"u-1"}}`)))
	raw, err := store.Load(KeyUser)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "u-1")

	_, err = store.Load(KeyUserAccess)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, store.Delete(KeyUser))
	_, err = store.Load(KeyUser)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}
