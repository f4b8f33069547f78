package identity

import "context"

type ctxKey string

const principalKey ctxKey = "identity_principal"

// ContextWithUser attaches the authenticated principal to the context.
func ContextWithUser(ctx context.Context, user Identity) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// UserFromContext returns the authenticated principal, if any.
func UserFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	user, ok := ctx.Value(principalKey).(Identity)
	return user, ok
}

// UserIDFromContext returns the authenticated principal's id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	user, ok := UserFromContext(ctx)
	if !ok || user.ID == "" {
		return "", false
	}
	return user.ID, true
}
