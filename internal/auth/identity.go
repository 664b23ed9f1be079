package auth

import (
	"context"

	"github.com/clmarcel/pokedex-api/internal/domain"
	"github.com/clmarcel/pokedex-api/internal/models"
)

// Identity is the authenticated caller, carried as an explicit context
// value from the auth middleware into handlers and services.
type Identity struct {
	UserID string
	Role   string
}

type identityKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the authenticated identity, if present.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// RequireRole fails with Forbidden unless the context identity has the
// given role.
func RequireRole(ctx context.Context, role string) error {
	id, ok := IdentityFrom(ctx)
	if !ok {
		return domain.Unauthorized("not authenticated")
	}
	if id.Role != role {
		return domain.Forbidden("insufficient privileges")
	}
	return nil
}

// RequireAdmin is RequireRole for the admin role.
func RequireAdmin(ctx context.Context) error {
	return RequireRole(ctx, models.RoleAdmin)
}
