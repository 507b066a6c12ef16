package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

// queryString returns nil when the parameter is absent or empty.
func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// pagination mirrors the filter defaults: page 1, limit 20, limit capped at 100.
func pagination(r *http.Request) (page, limit int) {
	page, limit = queryInt(r, "page", 1), queryInt(r, "limit", 20)
	if limit > 100 {
		limit = 20
	}
	return page, limit
}

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// queryIntPtr returns nil when the parameter is absent or not an integer.
func queryIntPtr(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
