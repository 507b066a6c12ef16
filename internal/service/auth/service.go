package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/mfa"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	policies settings.PolicyReader
	totp     *mfa.TOTP
	google   oauth.GoogleService
}

// NewAuthService wires the login flows; google may be nil when OAuth is not configured.
func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, policies settings.PolicyReader, totp *mfa.TOTP, google oauth.GoogleService) *AuthServiceImpl {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		policies:       policies,
		totp:           totp,
		google:         google,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	policy, err := a.policies.ForTenant(ctx, userData.TenantID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load security settings: %w", err)
	}

	if userData.FailedLoginAttempts >= policy.MaxLoginAttempts {
		return auth.TokenResponse{}, auth.ErrAccountLocked
	}

	// Cek password
	if userData.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)) != nil {
		return auth.TokenResponse{}, a.recordFailure(ctx, userData, policy, auth.ErrInvalidCredentials)
	}

	mfaSetupRequired := false
	switch {
	case userData.MFAEnabled:
		if loginReq.MFACode == "" {
			return auth.TokenResponse{}, auth.ErrMFARequired
		}
		if userData.MFASecret == nil || !a.totp.Validate(loginReq.MFACode, *userData.MFASecret) {
			return auth.TokenResponse{}, a.recordFailure(ctx, userData, policy, auth.ErrInvalidMFACode)
		}
	case policy.RequireMFA:
		mfaSetupRequired = true
	}

	if err := a.UserRepository.RecordLoginSuccess(ctx, userData.ID); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to record login: %w", err)
	}

	tokenResponse, err := a.issueTokens(userData, policy.SessionTimeout())
	if err != nil {
		return auth.TokenResponse{}, err
	}
	tokenResponse.MFASetupRequired = mfaSetupRequired

	slog.Info("User logged in", "user_id", userData.ID, "tenant_id", userData.TenantID, "role", userData.Role)
	return tokenResponse, nil
}

// recordFailure counts the failed attempt and upgrades cause to ErrAccountLocked once the limit is reached.
func (a *AuthServiceImpl) recordFailure(ctx context.Context, u user.User, policy settings.SecuritySettings, cause error) error {
	attempts, err := a.UserRepository.RecordLoginFailure(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	if attempts >= policy.MaxLoginAttempts {
		slog.Warn("Account locked after failed logins", "user_id", u.ID, "tenant_id", u.TenantID, "attempts", attempts)
		return auth.ErrAccountLocked
	}
	return cause
}

// LoginDemo issues an access token for the fixture identity. Demo sessions cannot refresh.
func (a *AuthServiceImpl) LoginDemo(ctx context.Context) (auth.TokenResponse, error) {
	claims := fixtures.DemoClaims()

	token, expiresAt, err := a.Service.GenerateAccessToken(claims, 0)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		Role:                 string(claims.Role),
		IsDemo:               true,
	}, nil
}

func (a *AuthServiceImpl) GoogleRedirectURL(state string) (string, error) {
	if a.google == nil {
		return "", auth.ErrOAuthNotConfigured
	}
	return a.google.RedirectURL(state), nil
}

// LoginWithGoogle signs in an existing user by verified Google email.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	if a.google == nil {
		return auth.TokenResponse{}, auth.ErrOAuthNotConfigured
	}

	token, err := a.google.Exchange(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		if errors.Is(err, oauth.ErrEmailNotVerified) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}

	userData, err := a.UserRepository.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	if userData.OAuthProviderID == nil || *userData.OAuthProviderID != info.GoogleID {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, info.GoogleID, info.Email)
		if err != nil {
			return auth.TokenResponse{}, err
		}
	}

	policy, err := a.policies.ForTenant(ctx, userData.TenantID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load security settings: %w", err)
	}
	if err := a.UserRepository.RecordLoginSuccess(ctx, userData.ID); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to record login: %w", err)
	}

	slog.Info("User logged in with google", "user_id", userData.ID, "tenant_id", userData.TenantID)
	return a.issueTokens(userData, policy.SessionTimeout())
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if a.Service.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	claims, _, err := a.Service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, claims.TenantID, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, err
	}
	if !userData.IsActive {
		return auth.AccessTokenResponse{}, auth.ErrAccountInactive
	}

	policy, err := a.policies.ForTenant(ctx, userData.TenantID)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to load security settings: %w", err)
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(accessClaims(userData), policy.SessionTimeout())
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return auth.AccessTokenResponse{AccessToken: token, AccessTokenExpiresIn: expiresAt}, nil
}

// Logout revokes the refresh token; unknown or malformed tokens are ignored.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, expiresAt, err := a.Service.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil
	}
	a.Service.RevokeToken(refreshToken, expiresAt)
	slog.Info("User logged out", "user_id", claims.UserID)
	return nil
}

func (a *AuthServiceImpl) EnrollMFA(ctx context.Context) (auth.MFAEnrollResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return auth.MFAEnrollResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, id.TenantID, id.UserID)
	if err != nil {
		return auth.MFAEnrollResponse{}, err
	}

	key, err := a.totp.Generate(userData.Email)
	if err != nil {
		return auth.MFAEnrollResponse{}, fmt.Errorf("failed to generate totp secret: %w", err)
	}
	if err := a.UserRepository.SetMFASecret(ctx, userData.ID, key.Secret); err != nil {
		return auth.MFAEnrollResponse{}, err
	}

	return auth.MFAEnrollResponse{Secret: key.Secret, URL: key.URL}, nil
}

func (a *AuthServiceImpl) VerifyMFA(ctx context.Context, req auth.MFAVerifyRequest) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, id.TenantID, id.UserID)
	if err != nil {
		return err
	}
	if userData.MFASecret == nil {
		return auth.ErrMFANotEnrolled
	}
	if !a.totp.Validate(req.Code, *userData.MFASecret) {
		return auth.ErrInvalidMFACode
	}

	if err := a.UserRepository.EnableMFA(ctx, userData.ID); err != nil {
		return err
	}
	slog.Info("MFA enabled", "user_id", userData.ID, "tenant_id", userData.TenantID)
	return nil
}

func (a *AuthServiceImpl) issueTokens(u user.User, accessTTL time.Duration) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(accessClaims(u), accessTTL)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(jwt.RefreshClaims{
		UserID:   u.ID,
		TenantID: u.TenantID,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenResponse.Role = string(u.Role)
	tokenResponse.IsDemo = u.IsDemo
	return tokenResponse, nil
}

func accessClaims(u user.User) jwt.AccessClaims {
	return jwt.AccessClaims{
		UserID:     u.ID,
		Email:      u.Email,
		TenantID:   u.TenantID,
		EmployeeID: u.EmployeeID,
		Role:       u.Role,
		IsDemo:     u.IsDemo,
	}
}
