package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	LoginDemo(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	EnrollMFA(w http.ResponseWriter, r *http.Request)
	VerifyMFA(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService   jwt.Service
	authService  auth.AuthService
	frontendURL  string
	secureCookie bool
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, frontendURL string, secureCookie bool) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:   jwtService,
		authService:  authService,
		frontendURL:  frontendURL,
		secureCookie: secureCookie,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "email", loginReq.Email, "error", err)
		response.HandleError(w, err)
		return
	}

	a.setRefreshCookie(w, tokenResponse)
	response.SuccessWithMessage(w, "User logged in successfully", tokenResponse)
}

// LoginDemo implements AuthHandler.
func (a *AuthHandlerImpl) LoginDemo(w http.ResponseWriter, r *http.Request) {
	tokenResponse, err := a.authService.LoginDemo(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Demo session started", tokenResponse)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	redirect, err := a.authService.GoogleRedirectURL(state)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api",
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, redirect, http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	redirectWithError := func(errorMsg string) {
		redirectURL := fmt.Sprintf("%s/auth/callback/google?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}

	if errorValue := r.URL.Query().Get("error"); errorValue != "" {
		slog.Warn("Google OAuth callback error", "error", errorValue)
		redirectWithError(errorValue)
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		slog.Warn("OAuth state mismatch", "error", auth.ErrOAuthStateMismatch)
		redirectWithError("state_mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		redirectWithError("code_empty")
		return
	}

	tokenResponse, err := a.authService.LoginWithGoogle(r.Context(), code)
	if err != nil {
		slog.Error("Failed to login with Google", "error", err)
		redirectWithError("login_failed")
		return
	}

	a.setRefreshCookie(w, tokenResponse)
	redirectURL := fmt.Sprintf("%s/auth/callback/google?access_token=%s&expires_in=%d",
		a.frontendURL,
		url.QueryEscape(tokenResponse.AccessToken),
		tokenResponse.AccessTokenExpiresIn,
	)
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshTokenReq auth.RefreshTokenRequest
	if cookie, err := r.Cookie(jwt.RefreshCookieName); err == nil {
		refreshTokenReq.RefreshToken = cookie.Value
	}

	if err := refreshTokenReq.Validate(); err != nil {
		response.Unauthorized(w, "Refresh token is required")
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), refreshTokenReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(jwt.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		response.Unauthorized(w, "Refresh token is required")
		return
	}

	if err := a.authService.Logout(r.Context(), cookie.Value); err != nil {
		response.HandleError(w, err)
		return
	}

	cleared := a.jwtService.RefreshTokenCookie("", 0)
	cleared.MaxAge = -1
	http.SetCookie(w, cleared)
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// EnrollMFA implements AuthHandler.
func (a *AuthHandlerImpl) EnrollMFA(w http.ResponseWriter, r *http.Request) {
	enrollment, err := a.authService.EnrollMFA(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, enrollment)
}

// VerifyMFA implements AuthHandler.
func (a *AuthHandlerImpl) VerifyMFA(w http.ResponseWriter, r *http.Request) {
	var req auth.MFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := a.authService.VerifyMFA(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "MFA enabled", nil)
}

func (a *AuthHandlerImpl) setRefreshCookie(w http.ResponseWriter, tokens auth.TokenResponse) {
	if tokens.RefreshToken == "" {
		return
	}
	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
}
