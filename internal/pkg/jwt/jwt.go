package jwt

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	RefreshCookieName = "refresh_token"
)

var ErrWrongTokenType = errors.New("wrong token type")

// AccessClaims is the identity carried by an access token.
type AccessClaims struct {
	UserID     string
	Email      string
	TenantID   string
	EmployeeID *string
	Role       user.Role
	IsDemo     bool
}

// RefreshClaims identifies the user a refresh token renews.
type RefreshClaims struct {
	UserID   string
	TenantID string
}

type Service interface {
	// GenerateAccessToken signs claims; ttl of zero uses the configured expiration.
	GenerateAccessToken(claims AccessClaims, ttl time.Duration) (token string, expiresAt int64, err error)
	GenerateRefreshToken(claims RefreshClaims) (token string, expiresAt int64, err error)
	// ParseRefreshToken verifies a refresh token and returns its claims.
	ParseRefreshToken(token string) (claims RefreshClaims, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTTL     time.Duration
	refreshTTL    time.Duration
	secureCookie  bool
	tokenAuth     *jwtauth.JWTAuth
	revokedTokens map[string]int64 // token -> exp
	mu            sync.RWMutex
	now           func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService expects expirations already validated by config.
func NewJWTService(secretKey string, accessExpiration, refreshExpiration string, secureCookie bool) (*JWTService, error) {
	accessTTL, err := time.ParseDuration(accessExpiration)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := time.ParseDuration(refreshExpiration)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		secureCookie:  secureCookie,
		tokenAuth:     jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens: make(map[string]int64),
		now:           time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(c AccessClaims, ttl time.Duration) (token string, expiresAt int64, err error) {
	if ttl <= 0 {
		ttl = j.accessTTL
	}
	expiresAt = j.now().Add(ttl).Unix()

	claims := map[string]interface{}{
		"user_id":     c.UserID,
		"email":       c.Email,
		"tenant_id":   c.TenantID,
		"employee_id": valueOrNil(c.EmployeeID),
		"role":        string(c.Role),
		"is_demo":     c.IsDemo,
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(c RefreshClaims) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTTL).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":   c.UserID,
		"tenant_id": c.TenantID,
		"exp":       expiresAt,
		"type":      TokenTypeRefresh,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (RefreshClaims, int64, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return RefreshClaims{}, 0, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeRefresh {
		return RefreshClaims{}, 0, ErrWrongTokenType
	}

	userID := stringClaim(token, "user_id")
	tenantID := stringClaim(token, "tenant_id")
	if userID == "" || tenantID == "" {
		return RefreshClaims{}, 0, jwt.ErrInvalidJWT()
	}

	return RefreshClaims{UserID: userID, TenantID: tenantID}, token.Expiration().Unix(), nil
}

func stringClaim(token jwt.Token, name string) string {
	v, ok := token.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/api",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken also drops entries whose token has already expired.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func valueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
