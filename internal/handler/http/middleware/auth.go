package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired must run after jwtauth.Verifier. It accepts only unrevoked access tokens
// and stores the caller's identity and demo flag in the request context.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if raw := jwtauth.TokenFromHeader(r); raw != "" && jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			id, ok := identityFromClaims(claims)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := auth.WithIdentity(r.Context(), id)
			ctx = demo.WithDemo(ctx, id.IsDemo)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func identityFromClaims(claims map[string]interface{}) (auth.Identity, bool) {
	userID, _ := claims["user_id"].(string)
	tenantID, _ := claims["tenant_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || tenantID == "" || !user.Role(role).IsValid() {
		return auth.Identity{}, false
	}

	id := auth.Identity{
		UserID:   userID,
		TenantID: tenantID,
		Role:     user.Role(role),
	}
	id.Email, _ = claims["email"].(string)
	id.IsDemo, _ = claims["is_demo"].(bool)
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		id.EmployeeID = &employeeID
	}
	return id, true
}
