package auth

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode,omitempty"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	if r.MFACode != "" && (len(r.MFACode) != 6 || !validator.IsNumeric(r.MFACode)) {
		errs.Add("mfaCode", "mfaCode must be 6 digits")
	}

	return errs.Err()
}

type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	AccessTokenExpiresIn  int64  `json:"accessTokenExpiresIn"`
	RefreshToken          string `json:"-"`
	RefreshTokenExpiresIn int64  `json:"-"`
	Role                  string `json:"role"`
	IsDemo                bool   `json:"isDemo"`
	// MFASetupRequired is set when the tenant requires MFA and the user has not enrolled yet.
	MFASetupRequired bool `json:"mfaSetupRequired,omitempty"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"accessToken"`
	AccessTokenExpiresIn int64  `json:"accessTokenExpiresIn"`
}

type RefreshTokenRequest struct {
	RefreshToken string
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh token is required")
	}
	return errs.Err()
}

type MFAEnrollResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"otpauthUrl"`
}

type MFAVerifyRequest struct {
	Code string `json:"code"`
}

func (r *MFAVerifyRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Code) != 6 || !validator.IsNumeric(r.Code) {
		errs.Add("code", "code must be 6 digits")
	}
	return errs.Err()
}
