package settings

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type SecuritySettingsResponse struct {
	PasswordMinLength     int        `json:"passwordMinLength"`
	RequireMFA            bool       `json:"requireMfa"`
	SessionTimeoutMinutes int        `json:"sessionTimeoutMinutes"`
	MaxLoginAttempts      int        `json:"maxLoginAttempts"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

func ToResponse(s SecuritySettings) SecuritySettingsResponse {
	resp := SecuritySettingsResponse{
		PasswordMinLength:     s.PasswordMinLength,
		RequireMFA:            s.RequireMFA,
		SessionTimeoutMinutes: s.SessionTimeoutMinutes,
		MaxLoginAttempts:      s.MaxLoginAttempts,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = &s.UpdatedAt
	}
	return resp
}

type UpdateSecuritySettingsRequest struct {
	PasswordMinLength     *int  `json:"passwordMinLength,omitempty" validate:"omitempty,gte=8,lte=128"`
	RequireMFA            *bool `json:"requireMfa,omitempty"`
	SessionTimeoutMinutes *int  `json:"sessionTimeoutMinutes,omitempty" validate:"omitempty,gte=5,lte=1440"`
	MaxLoginAttempts      *int  `json:"maxLoginAttempts,omitempty" validate:"omitempty,gte=3,lte=20"`
}

func (r *UpdateSecuritySettingsRequest) Validate() error {
	errs := validator.Struct(r)

	if r.PasswordMinLength == nil && r.RequireMFA == nil && r.SessionTimeoutMinutes == nil && r.MaxLoginAttempts == nil {
		errs.Add("body", "at least one field must be provided")
	}

	return errs.Err()
}

func (r UpdateSecuritySettingsRequest) Apply(s *SecuritySettings) {
	if r.PasswordMinLength != nil {
		s.PasswordMinLength = *r.PasswordMinLength
	}
	if r.RequireMFA != nil {
		s.RequireMFA = *r.RequireMFA
	}
	if r.SessionTimeoutMinutes != nil {
		s.SessionTimeoutMinutes = *r.SessionTimeoutMinutes
	}
	if r.MaxLoginAttempts != nil {
		s.MaxLoginAttempts = *r.MaxLoginAttempts
	}
}

// CheckPassword enforces the tenant password policy.
func (s SecuritySettings) CheckPassword(password string) error {
	if len(password) < s.PasswordMinLength {
		return ErrPasswordTooWeak
	}
	return nil
}
