package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/mfa"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
	testPassword   = "correct-horse-battery"
	testTenantID   = "tenant-1"
	testUserID     = "user-1"
)

type memUsers struct {
	user.UserRepository
	users map[string]user.User
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, tenantID, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok || u.TenantID != tenantID {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) RecordLoginSuccess(_ context.Context, id string) error {
	u := m.users[id]
	u.FailedLoginAttempts = 0
	m.users[id] = u
	return nil
}

func (m *memUsers) RecordLoginFailure(_ context.Context, id string) (int, error) {
	u := m.users[id]
	u.FailedLoginAttempts++
	m.users[id] = u
	return u.FailedLoginAttempts, nil
}

func (m *memUsers) SetMFASecret(_ context.Context, id, secret string) error {
	u := m.users[id]
	u.MFASecret = &secret
	u.MFAEnabled = false
	m.users[id] = u
	return nil
}

func (m *memUsers) EnableMFA(_ context.Context, id string) error {
	u := m.users[id]
	u.MFAEnabled = true
	m.users[id] = u
	return nil
}

type staticPolicy struct{ s settings.SecuritySettings }

func (p staticPolicy) ForTenant(_ context.Context, tenantID string) (settings.SecuritySettings, error) {
	s := p.s
	s.TenantID = tenantID
	return s, nil
}

func newTestAuthService(t *testing.T, policy settings.SecuritySettings) (*AuthServiceImpl, *memUsers, *jwt.JWTService) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)
	employeeID := "emp-1"

	users := &memUsers{users: map[string]user.User{
		testUserID: {
			ID: testUserID, TenantID: testTenantID, Email: "ana@example.com", PasswordHash: &hashed,
			Role: user.RoleHR, IsActive: true, EmployeeID: &employeeID,
		},
	}}

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp, false)
	require.NoError(t, err)

	svc := NewAuthService(users, jwtService, staticPolicy{policy}, mfa.NewTOTP("HRMS"), nil)
	return svc, users, jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, _, jwtService := newTestAuthService(t, settings.Defaults(""))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: testPassword})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "HR", resp.Role)
	assert.False(t, resp.IsDemo)

	token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), resp.AccessToken)
	require.NoError(t, err)
	claims := token.PrivateClaims()
	assert.Equal(t, testTenantID, claims["tenant_id"])
	assert.Equal(t, "emp-1", claims["employee_id"])
}

func TestLogin_SessionTimeoutSetsAccessTTL(t *testing.T) {
	policy := settings.Defaults("")
	policy.SessionTimeoutMinutes = 10
	svc, _, _ := newTestAuthService(t, policy)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(10*time.Minute).Unix(), resp.AccessTokenExpiresIn, 2)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t, settings.Defaults(""))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_LocksAfterMaxAttempts(t *testing.T) {
	policy := settings.Defaults("")
	policy.MaxLoginAttempts = 3
	svc, users, _ := newTestAuthService(t, policy)
	bad := auth.LoginRequest{Email: "ana@example.com", Password: "wrong-password"}

	_, err := svc.Login(context.Background(), bad)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), bad)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), bad)
	assert.ErrorIs(t, err, auth.ErrAccountLocked)

	// The correct password no longer helps.
	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrAccountLocked)
	assert.Equal(t, 3, users.users[testUserID].FailedLoginAttempts)
}

func TestLogin_SuccessResetsFailures(t *testing.T) {
	svc, users, _ := newTestAuthService(t, settings.Defaults(""))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.Equal(t, 1, users.users[testUserID].FailedLoginAttempts)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, 0, users.users[testUserID].FailedLoginAttempts)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, users, _ := newTestAuthService(t, settings.Defaults(""))
	u := users.users[testUserID]
	u.IsActive = false
	users.users[testUserID] = u

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestMFA_EnrollVerifyAndLogin(t *testing.T) {
	svc, users, _ := newTestAuthService(t, settings.Defaults(""))
	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: testUserID, TenantID: testTenantID, Role: user.RoleHR})

	enrolled, err := svc.EnrollMFA(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, enrolled.Secret)

	assert.ErrorIs(t, svc.VerifyMFA(ctx, auth.MFAVerifyRequest{Code: "000000"}), auth.ErrInvalidMFACode)

	code, err := mfa.CodeAt(enrolled.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.VerifyMFA(ctx, auth.MFAVerifyRequest{Code: code}))
	assert.True(t, users.users[testUserID].MFAEnabled)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrMFARequired)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: testPassword, MFACode: code})
	assert.NoError(t, err)
}

func TestLogin_TenantRequiresMFAWithoutEnrollment(t *testing.T) {
	policy := settings.Defaults("")
	policy.RequireMFA = true
	svc, _, _ := newTestAuthService(t, policy)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ana@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.True(t, resp.MFASetupRequired)
}

func TestRefreshToken(t *testing.T) {
	svc, _, jwtService := newTestAuthService(t, settings.Defaults(""))

	refreshToken, _, err := jwtService.GenerateRefreshToken(jwt.RefreshClaims{UserID: testUserID, TenantID: testTenantID})
	require.NoError(t, err)

	resp, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	require.NoError(t, svc.Logout(context.Background(), refreshToken))

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshToken_Invalid(t *testing.T) {
	svc, _, _ := newTestAuthService(t, settings.Defaults(""))

	_, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLoginDemo(t *testing.T) {
	svc, _, jwtService := newTestAuthService(t, settings.Defaults(""))

	resp, err := svc.LoginDemo(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.IsDemo)
	assert.Empty(t, resp.RefreshToken)

	token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, true, token.PrivateClaims()["is_demo"])
	assert.Equal(t, fixtures.DemoTenantID, token.PrivateClaims()["tenant_id"])
}

func TestGoogle_NotConfigured(t *testing.T) {
	svc, _, _ := newTestAuthService(t, settings.Defaults(""))

	_, err := svc.GoogleRedirectURL("state")
	assert.ErrorIs(t, err, auth.ErrOAuthNotConfigured)
	_, err = svc.LoginWithGoogle(context.Background(), "code")
	assert.ErrorIs(t, err, auth.ErrOAuthNotConfigured)
}
