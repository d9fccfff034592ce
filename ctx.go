package wpauth

import (
	"context"
	"fmt"
)

var sessionCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// WithSessionContext sets the SessionUser in the given context
func WithSessionContext(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, sessionCtxKey, user)
}

// SessionFromContext finds the session user from the context.
func SessionFromContext(ctx context.Context) (*SessionUser, bool) {
	raw, ok := ctx.Value(sessionCtxKey).(*SessionUser)
	return raw, ok
}

// RequireSession returns the session user or an error when the context
// carries none.
func RequireSession(ctx context.Context) (*SessionUser, error) {
	user, ok := SessionFromContext(ctx)
	if !ok || user == nil {
		return nil, ErrUnableToFindSession
	}
	return user, nil
}

// RequireRole returns the session user only if it carries the given role.
func RequireRole(ctx context.Context, role string) (*SessionUser, error) {
	user, err := RequireSession(ctx)
	if err != nil {
		return nil, err
	}

	if !user.HasRole(role) {
		return nil, fmt.Errorf("role %q required", role)
	}

	return user, nil
}
