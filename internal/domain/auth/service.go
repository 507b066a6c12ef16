package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginDemo(ctx context.Context) (TokenResponse, error)
	LoginWithGoogle(ctx context.Context, code string) (TokenResponse, error)
	GoogleRedirectURL(state string) (string, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	EnrollMFA(ctx context.Context) (MFAEnrollResponse, error)
	VerifyMFA(ctx context.Context, req MFAVerifyRequest) error
}
