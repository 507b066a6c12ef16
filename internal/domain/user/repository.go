package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, tenantID, id string) (User, error)
	List(ctx context.Context, tenantID string, filter UserFilter) ([]User, int64, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindFirstByRole(ctx context.Context, tenantID string, role Role) (User, error)
	UpdateRole(ctx context.Context, tenantID, id string, role Role) error
	UpdateStatus(ctx context.Context, tenantID, id string, active bool) error
	RecordLoginSuccess(ctx context.Context, id string) error
	RecordLoginFailure(ctx context.Context, id string) (int, error)
	SetMFASecret(ctx context.Context, id string, secret string) error
	EnableMFA(ctx context.Context, id string) error
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}
