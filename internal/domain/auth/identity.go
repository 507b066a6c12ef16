package auth

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

// Identity is the authenticated caller, derived once per request from the access token.
type Identity struct {
	UserID     string
	TenantID   string
	Email      string
	EmployeeID *string
	Role       user.Role
	IsDemo     bool
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// RequireIdentity returns the caller or ErrUnauthenticated.
func RequireIdentity(ctx context.Context) (Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok || id.TenantID == "" || id.UserID == "" {
		return Identity{}, ErrUnauthenticated
	}
	return id, nil
}

func (i Identity) Can(p user.Permission) bool {
	return user.HasPermission(i.Role, p)
}
