package tenant

import "context"

type TenantService interface {
	GetMine(ctx context.Context) (TenantResponse, error)
	UpdateMine(ctx context.Context, req UpdateTenantRequest) (TenantResponse, error)
}
