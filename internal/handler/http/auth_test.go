package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	auth.AuthService
	login      func(auth.LoginRequest) (auth.TokenResponse, error)
	loggedOut  string
	refreshed  string
	redirectTo string
}

func (f *fakeAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return f.login(req)
}

func (f *fakeAuthService) LoginDemo(context.Context) (auth.TokenResponse, error) {
	return auth.TokenResponse{AccessToken: "demo-access", Role: "ADMIN", IsDemo: true}, nil
}

func (f *fakeAuthService) RefreshToken(_ context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	f.refreshed = req.RefreshToken
	return auth.AccessTokenResponse{AccessToken: "renewed"}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return nil
}

func (f *fakeAuthService) GoogleRedirectURL(state string) (string, error) {
	if f.redirectTo == "" {
		return "", auth.ErrOAuthNotConfigured
	}
	return f.redirectTo + "?state=" + state, nil
}

func newAuthHandlerForTest(t *testing.T, svc auth.AuthService) AuthHandler {
	t.Helper()
	jwtSvc, err := jwt.NewJWTService("handler-test-secret", "1h", "24h", false)
	require.NoError(t, err)
	return NewAuthHandler(jwtSvc, svc, "http://localhost:3000", false)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &fakeAuthService{login: func(req auth.LoginRequest) (auth.TokenResponse, error) {
		if req.Password != "Secret123" {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{AccessToken: "access", RefreshToken: "refresh", RefreshTokenExpiresIn: 4102444800, Role: "HR"}, nil
	}}
	h := newAuthHandlerForTest(t, svc)

	t.Run("success sets refresh cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, `{"email":"ana@acme.test","password":"Secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var tokens auth.TokenResponse
		env := decodeEnvelope(t, rec, &tokens)
		assert.Equal(t, "success", env.Status)
		assert.Equal(t, "access", tokens.AccessToken)
		assert.NotContains(t, rec.Body.String(), `"refresh"`)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, jwt.RefreshCookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, `{"email":"ana@acme.test","password":"nope"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, `{"email":"not-an-email"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec, nil)
		assert.Contains(t, string(env.Errors), "password")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_LoginDemo_NoRefreshCookie(t *testing.T) {
	h := newAuthHandlerForTest(t, &fakeAuthService{})

	rec := httptest.NewRecorder()
	h.LoginDemo(rec, httptest.NewRequest(http.MethodPost, "/api/auth/demo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var tokens auth.TokenResponse
	decodeEnvelope(t, rec, &tokens)
	assert.True(t, tokens.IsDemo)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	svc := &fakeAuthService{}
	h := newAuthHandlerForTest(t, svc)

	t.Run("refresh without cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh from cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: jwt.RefreshCookieName, Value: "refresh-1"})
		rec := httptest.NewRecorder()
		h.RefreshToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "refresh-1", svc.refreshed)
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: jwt.RefreshCookieName, Value: "refresh-2"})
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "refresh-2", svc.loggedOut)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
	})
}

func TestAuthHandler_Google(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		h := newAuthHandlerForTest(t, &fakeAuthService{})
		rec := httptest.NewRecorder()
		h.LoginWithGoogle(rec, httptest.NewRequest(http.MethodGet, "/api/auth/login/oauth/google", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("redirect sets state cookie", func(t *testing.T) {
		h := newAuthHandlerForTest(t, &fakeAuthService{redirectTo: "https://accounts.google.com/o/oauth2/auth"})
		rec := httptest.NewRecorder()
		h.LoginWithGoogle(rec, httptest.NewRequest(http.MethodGet, "/api/auth/login/oauth/google", nil))

		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Contains(t, rec.Header().Get("Location"), "state="+cookies[0].Value)
	})

	t.Run("callback state mismatch", func(t *testing.T) {
		h := newAuthHandlerForTest(t, &fakeAuthService{})
		req := httptest.NewRequest(http.MethodGet, "/api/auth/oauth/callback/google?state=a&code=c", nil)
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "b"})
		rec := httptest.NewRecorder()
		h.OAuthCallbackGoogle(rec, req)

		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "error=state_mismatch")
	})
}
