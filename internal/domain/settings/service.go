package settings

import "context"

type SettingsService interface {
	GetSecurity(ctx context.Context) (SecuritySettingsResponse, error)
	UpdateSecurity(ctx context.Context, req UpdateSecuritySettingsRequest) (SecuritySettingsResponse, error)
}

// PolicyReader resolves the effective settings for a tenant without a request identity,
// as needed during login.
type PolicyReader interface {
	ForTenant(ctx context.Context, tenantID string) (SecuritySettings, error)
}
