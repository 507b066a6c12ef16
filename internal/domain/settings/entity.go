package settings

import "time"

const (
	DefaultPasswordMinLength     = 8
	DefaultSessionTimeoutMinutes = 60
	DefaultMaxLoginAttempts      = 5
)

// SecuritySettings is stored per tenant; Defaults applies when no row exists.
type SecuritySettings struct {
	TenantID              string
	PasswordMinLength     int
	RequireMFA            bool
	SessionTimeoutMinutes int
	MaxLoginAttempts      int
	UpdatedBy             *string
	UpdatedAt             time.Time
}

func Defaults(tenantID string) SecuritySettings {
	return SecuritySettings{
		TenantID:              tenantID,
		PasswordMinLength:     DefaultPasswordMinLength,
		RequireMFA:            false,
		SessionTimeoutMinutes: DefaultSessionTimeoutMinutes,
		MaxLoginAttempts:      DefaultMaxLoginAttempts,
	}
}

// SessionTimeout is the access token lifetime the tenant allows.
func (s SecuritySettings) SessionTimeout() time.Duration {
	return time.Duration(s.SessionTimeoutMinutes) * time.Minute
}
