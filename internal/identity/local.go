package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const localIssuer = "oms"

// ErrCredentialNotFound is returned by CredentialStore implementations when
// no account exists for an email.
var ErrCredentialNotFound = errors.New("identity: credential not found")

// ErrCredentialExists is returned when an account already holds the email.
var ErrCredentialExists = errors.New("identity: credential already exists")

// Credential is a stored account usable for password sign-in.
type Credential struct {
	UserID       string
	Email        string
	PasswordHash string
	Status       string
}

// CredentialStore persists accounts for the self-hosted provider.
type CredentialStore interface {
	CredentialByEmail(ctx context.Context, email string) (Credential, error)
	CreateCredential(ctx context.Context, cred Credential) error
}

// LocalProvider is a self-hosted identity provider backed by the users table:
// bcrypt password verification and HS256 session tokens. Sessions are
// stateless; sign-out simply discards the token client side.
type LocalProvider struct {
	store    CredentialStore
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// LocalOption configures LocalProvider.
type LocalOption func(*LocalProvider)

// WithTokenTTL overrides the session token lifetime.
func WithTokenTTL(ttl time.Duration) LocalOption {
	return func(p *LocalProvider) {
		if ttl > 0 {
			p.tokenTTL = ttl
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) LocalOption {
	return func(p *LocalProvider) {
		if fn != nil {
			p.now = fn
		}
	}
}

// NewLocalProvider constructs the provider. The secret signs session tokens
// and must be non-empty.
func NewLocalProvider(store CredentialStore, secret string, opts ...LocalOption) (*LocalProvider, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("identity: token secret is required")
	}
	p := &LocalProvider{
		store:    store,
		secret:   []byte(secret),
		tokenTTL: 15 * time.Minute,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return Session{}, &APIError{Status: http.StatusBadRequest, Message: MsgInvalidCredentials}
	}
	cred, err := p.store.CredentialByEmail(ctx, email)
	if errors.Is(err, ErrCredentialNotFound) {
		return Session{}, &APIError{Status: http.StatusUnauthorized, Message: MsgInvalidCredentials}
	}
	if err != nil {
		return Session{}, fmt.Errorf("identity: lookup credential: %w", err)
	}
	if cred.Status != "active" {
		return Session{}, &APIError{Status: http.StatusForbidden, Message: MsgEmailNotConfirmed}
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return Session{}, &APIError{Status: http.StatusUnauthorized, Message: MsgInvalidCredentials}
	}

	now := p.now().UTC()
	expiresAt := now.Add(p.tokenTTL)
	claims := sessionClaims{
		Email: cred.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    localIssuer,
			Subject:   cred.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return Session{}, fmt.Errorf("identity: sign token: %w", err)
	}
	return Session{
		User:        Identity{ID: cred.UserID, Email: cred.Email},
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password, redirectTo string) (Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return Identity{}, &APIError{Status: http.StatusBadRequest, Message: "A valid email is required"}
	}
	if len(password) < 6 {
		return Identity{}, &APIError{Status: http.StatusBadRequest, Message: "Password should be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("identity: hash password: %w", err)
	}
	cred := Credential{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Status:       "active",
	}
	err = p.store.CreateCredential(ctx, cred)
	if errors.Is(err, ErrCredentialExists) {
		return Identity{}, &APIError{Status: http.StatusConflict, Message: MsgAlreadyRegistered}
	}
	if err != nil {
		return Identity{}, fmt.Errorf("identity: create credential: %w", err)
	}
	// There is no mail pipeline in local mode; redirectTo is accepted for
	// interface parity and ignored.
	_ = redirectTo
	return Identity{ID: cred.UserID, Email: cred.Email}, nil
}

func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	// Stateless tokens: nothing to revoke server side.
	return nil
}

func (p *LocalProvider) GetSession(ctx context.Context, token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, &APIError{Status: http.StatusUnauthorized, Message: "Auth session missing"}
	}
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil || !parsed.Valid {
		return Session{}, &APIError{Status: http.StatusUnauthorized, Message: "Invalid session token"}
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Issuer != localIssuer || strings.TrimSpace(claims.Subject) == "" {
		return Session{}, &APIError{Status: http.StatusUnauthorized, Message: "Invalid session token"}
	}
	sess := Session{
		User:        Identity{ID: claims.Subject, Email: claims.Email},
		AccessToken: token,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}
