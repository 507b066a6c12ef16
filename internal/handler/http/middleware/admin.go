package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

// AdminOnly restricts a route to tenant administrators.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.RequireIdentity(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if id.Role != user.RoleAdmin {
			response.Forbidden(w, "Administrator role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
