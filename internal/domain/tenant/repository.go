package tenant

import "context"

type TenantRepository interface {
	GetByID(ctx context.Context, id string) (Tenant, error)
	UpdateName(ctx context.Context, id string, name string) error
}

// TenantWriter creates tenants during onboarding.
type TenantWriter interface {
	Create(ctx context.Context, t Tenant) (Tenant, error)
}
