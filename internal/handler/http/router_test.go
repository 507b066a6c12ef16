package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*chi.Mux, *jwt.JWTService) {
	t.Helper()
	svc, err := jwt.NewJWTService("router-test-secret", "1h", "24h", false)
	require.NoError(t, err)

	cfg := &config.Config{App: config.AppConfig{
		Name:           "hrms-test",
		AllowedOrigins: []string{"http://localhost:3000"},
		RateLimit:      1000,
		LoginRateLimit: 100,
	}}
	dashboards := fixtures.NewDemoDashboardService()
	h := Handlers{
		Auth:        NewAuthHandler(svc, nil, "http://localhost:3000", false),
		Tenant:      NewTenantHandler(nil, demo.NewSelector[settings.SettingsService](fixtures.DemoSettingsService{}, fixtures.DemoSettingsService{})),
		User:        NewUserHandler(demo.NewSelector[user.UserService](fixtures.DemoUserService{}, fixtures.DemoUserService{})),
		Employee:    NewEmployeeHandler(demo.NewSelector[employee.EmployeeService](fixtures.DemoEmployeeService{}, fixtures.DemoEmployeeService{})),
		Master:      NewMasterHandler(nil),
		Leave:       NewLeaveHandler(nil),
		Payroll:     NewPayrollHandler(nil),
		Performance: NewPerformanceHandler(nil),
		Dashboard:   NewDashboardHandler(demo.NewSelector[dashboard.DashboardService](dashboards, dashboards)),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(cfg, logger, svc, metrics.NewMetrics(), h), svc
}

func bearer(t *testing.T, svc *jwt.JWTService, role user.Role, isDemo bool) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(jwt.AccessClaims{
		UserID: "user-1", TenantID: "tenant-1", Email: "ana@acme.test", Role: role, IsDemo: isDemo,
	}, 0)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_RequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/admin", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_VersionedAlias(t *testing.T) {
	r, svc := newTestRouter(t)

	for _, path := range []string{"/api/dashboard/admin", "/api/v1/dashboard/admin"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", bearer(t, svc, user.RoleAdmin, false))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_DemoIsReadOnly(t *testing.T) {
	r, svc := newTestRouter(t)
	token := bearer(t, svc, user.RoleAdmin, true)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/users", jsonBody(t, map[string]string{"email": "new@acme.test"}))
	req.Header.Set("Authorization", token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_PermissionDenied(t *testing.T) {
	r, svc := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/dashboard/admin"},
		{http.MethodGet, "/api/employees"},
		{http.MethodPut, "/api/tenants/me"},
		{http.MethodPut, "/api/leave/requests/lr-1/decision"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", bearer(t, svc, user.RoleEmployee, false))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, tc.method+" "+tc.path)
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
