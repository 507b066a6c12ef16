package settings

import "context"

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound when the tenant has no row yet.
	Get(ctx context.Context, tenantID string) (SecuritySettings, error)
	Upsert(ctx context.Context, s SecuritySettings) (SecuritySettings, error)
}
