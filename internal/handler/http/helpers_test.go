package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"meta"`
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func asRole(req *http.Request, role user.Role) *http.Request {
	employeeID := "emp-1"
	id := auth.Identity{UserID: "user-1", TenantID: "tenant-1", EmployeeID: &employeeID, Role: role}
	return req.WithContext(auth.WithIdentity(req.Context(), id))
}

// serve mounts h on pattern so chi URL params resolve.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}
