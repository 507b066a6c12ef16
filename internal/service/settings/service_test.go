package settings

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSettings struct {
	rows map[string]settings.SecuritySettings
}

func (m *memSettings) Get(_ context.Context, tenantID string) (settings.SecuritySettings, error) {
	s, ok := m.rows[tenantID]
	if !ok {
		return settings.SecuritySettings{}, settings.ErrSettingsNotFound
	}
	return s, nil
}

func (m *memSettings) Upsert(_ context.Context, s settings.SecuritySettings) (settings.SecuritySettings, error) {
	s.UpdatedAt = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	m.rows[s.TenantID] = s
	return s, nil
}

func adminCtx() context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UserID: "u-admin", TenantID: "t1", Role: user.RoleAdmin})
}

func TestForTenant_Defaults(t *testing.T) {
	svc := NewSettingsService(&memSettings{rows: map[string]settings.SecuritySettings{}})

	got, err := svc.ForTenant(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults("t1"), got)
}

func TestUpdateSecurity_MergesOverCurrent(t *testing.T) {
	repo := &memSettings{rows: map[string]settings.SecuritySettings{}}
	svc := NewSettingsService(repo)
	timeout := 30

	resp, err := svc.UpdateSecurity(adminCtx(), settings.UpdateSecuritySettingsRequest{SessionTimeoutMinutes: &timeout})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.SessionTimeoutMinutes)
	assert.Equal(t, settings.DefaultPasswordMinLength, resp.PasswordMinLength)
	assert.NotNil(t, resp.UpdatedAt)
	require.NotNil(t, repo.rows["t1"].UpdatedBy)
	assert.Equal(t, "u-admin", *repo.rows["t1"].UpdatedBy)
}

func TestUpdateSecurity_Validation(t *testing.T) {
	svc := NewSettingsService(&memSettings{rows: map[string]settings.SecuritySettings{}})
	tooShort := 4

	_, err := svc.UpdateSecurity(adminCtx(), settings.UpdateSecuritySettingsRequest{PasswordMinLength: &tooShort})
	assert.Error(t, err)

	_, err = svc.UpdateSecurity(adminCtx(), settings.UpdateSecuritySettingsRequest{})
	assert.Error(t, err)
}
