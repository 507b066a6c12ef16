package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountLocked       = errors.New("account is locked")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrMFARequired         = errors.New("mfa code required")
	ErrInvalidMFACode      = errors.New("invalid mfa code")
	ErrMFANotEnrolled      = errors.New("mfa enrollment not started")
	ErrOAuthNotConfigured  = errors.New("google login is not configured")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
)
