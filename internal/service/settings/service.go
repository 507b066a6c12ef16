package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	repo settings.SettingsRepository
}

func NewSettingsService(repo settings.SettingsRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{repo: repo}
}

// ForTenant returns the stored settings or the defaults when the tenant has none.
func (s *SettingsServiceImpl) ForTenant(ctx context.Context, tenantID string) (settings.SecuritySettings, error) {
	stored, err := s.repo.Get(ctx, tenantID)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.Defaults(tenantID), nil
	}
	if err != nil {
		return settings.SecuritySettings{}, fmt.Errorf("failed to get security settings: %w", err)
	}
	return stored, nil
}

func (s *SettingsServiceImpl) GetSecurity(ctx context.Context) (settings.SecuritySettingsResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return settings.SecuritySettingsResponse{}, err
	}

	current, err := s.ForTenant(ctx, id.TenantID)
	if err != nil {
		return settings.SecuritySettingsResponse{}, err
	}
	return settings.ToResponse(current), nil
}

func (s *SettingsServiceImpl) UpdateSecurity(ctx context.Context, req settings.UpdateSecuritySettingsRequest) (settings.SecuritySettingsResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return settings.SecuritySettingsResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return settings.SecuritySettingsResponse{}, err
	}

	current, err := s.ForTenant(ctx, id.TenantID)
	if err != nil {
		return settings.SecuritySettingsResponse{}, err
	}
	req.Apply(&current)
	current.UpdatedBy = &id.UserID

	saved, err := s.repo.Upsert(ctx, current)
	if err != nil {
		return settings.SecuritySettingsResponse{}, fmt.Errorf("failed to save security settings: %w", err)
	}

	slog.Info("Security settings updated", "tenant_id", id.TenantID, "by", id.UserID)
	return settings.ToResponse(saved), nil
}
