package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
)

// DemoReadOnly rejects state-changing requests from demo identities.
func DemoReadOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if demo.IsDemo(r.Context()) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				response.HandleError(w, demo.ErrDemoReadOnly)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
