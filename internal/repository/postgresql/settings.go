package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

func (r *settingsRepositoryImpl) Get(ctx context.Context, tenantID string) (settings.SecuritySettings, error) {
	q := GetQuerier(ctx, r.db)

	var s settings.SecuritySettings
	err := q.QueryRow(ctx, `
		SELECT tenant_id, password_min_length, require_mfa, session_timeout_minutes,
		       max_login_attempts, updated_by, updated_at
		FROM security_settings WHERE tenant_id = $1
	`, tenantID).Scan(
		&s.TenantID, &s.PasswordMinLength, &s.RequireMFA, &s.SessionTimeoutMinutes,
		&s.MaxLoginAttempts, &s.UpdatedBy, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.SecuritySettings{}, settings.ErrSettingsNotFound
		}
		return settings.SecuritySettings{}, err
	}
	return s, nil
}

func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.SecuritySettings) (settings.SecuritySettings, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO security_settings (
			tenant_id, password_min_length, require_mfa, session_timeout_minutes, max_login_attempts, updated_by, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (tenant_id) DO UPDATE SET
			password_min_length = EXCLUDED.password_min_length,
			require_mfa = EXCLUDED.require_mfa,
			session_timeout_minutes = EXCLUDED.session_timeout_minutes,
			max_login_attempts = EXCLUDED.max_login_attempts,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING updated_at
	`, s.TenantID, s.PasswordMinLength, s.RequireMFA, s.SessionTimeoutMinutes, s.MaxLoginAttempts, s.UpdatedBy,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return settings.SecuritySettings{}, fmt.Errorf("upsert security settings: %w", err)
	}
	return s, nil
}
