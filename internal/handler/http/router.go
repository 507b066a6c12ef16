package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/unrolled/secure"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Auth        AuthHandler
	Tenant      TenantHandler
	User        UserHandler
	Employee    EmployeeHandler
	Master      MasterHandler
	Leave       LeaveHandler
	Payroll     PayrollHandler
	Performance PerformanceHandler
	Dashboard   DashboardHandler
}

// NewLogger builds the JSON logger shared by request logging and the services.
func NewLogger(app config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app.Name),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)
}

func NewRouter(cfg *config.Config, logger *slog.Logger, JWTService jwt.Service, m *metrics.Metrics, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	secureHeaders := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !cfg.IsProduction(),
	})

	r.Use(otelhttp.NewMiddleware(cfg.App.Name))
	r.Use(m.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(secureHeaders.Handler)
	r.Use(httprate.Limit(cfg.App.RateLimit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimited),
	))
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", m.Handler())

	loginLimiter := httprate.Limit(cfg.App.LoginRateLimit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimited),
	)
	api := apiRoutes(JWTService, loginLimiter, h)
	r.Route("/api", api)
	r.Route("/api/v1", api)

	return r
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	response.TooManyRequests(w, "Too many requests, please retry later")
}

func apiRoutes(JWTService jwt.Service, loginLimiter func(http.Handler) http.Handler, h Handlers) func(chi.Router) {
	return func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter).Post("/login", h.Auth.Login)
			r.With(loginLimiter).Post("/demo", h.Auth.LoginDemo)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.DemoReadOnly)

			r.Post("/auth/mfa/enroll", h.Auth.EnrollMFA)
			r.Post("/auth/mfa/verify", h.Auth.VerifyMFA)

			r.Route("/tenants/me", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTenantView)).Get("/", h.Tenant.GetMine)
				r.With(middleware.AdminOnly).Put("/", h.Tenant.UpdateMine)
			})

			r.Route("/settings/security", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionSettingsManage))
				r.Get("/", h.Tenant.GetSecuritySettings)
				r.With(middleware.AdminOnly).Put("/", h.Tenant.UpdateSecuritySettings)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserManage))
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}/role", h.User.UpdateRole)
				r.Put("/{id}/status", h.User.UpdateStatus)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Post("/import", h.Employee.ImportEmployees)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", h.Master.ListBranches)
				r.Get("/{id}", h.Master.GetBranch)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMasterManage))
					r.Post("/", h.Master.CreateBranch)
					r.Put("/{id}", h.Master.UpdateBranch)
					r.Delete("/{id}", h.Master.DeleteBranch)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Master.ListDepartments)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionMasterManage))
					r.Post("/", h.Master.CreateDepartment)
					r.Put("/{id}", h.Master.UpdateDepartment)
					r.Delete("/{id}", h.Master.DeleteDepartment)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", h.Leave.ListTypes)
				r.Get("/policies", h.Leave.ListPolicies)
				r.Get("/holidays", h.Leave.ListHolidays)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveManageTypes))
					r.Post("/types", h.Leave.CreateType)
					r.Put("/types/{id}", h.Leave.UpdateType)
					r.Delete("/types/{id}", h.Leave.DeleteType)
					r.Post("/policies", h.Leave.CreatePolicy)
					r.Put("/policies/{id}", h.Leave.UpdatePolicy)
					r.Post("/holidays", h.Leave.CreateHoliday)
					r.Delete("/holidays/{id}", h.Leave.DeleteHoliday)
				})

				r.Route("/requests", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/", h.Leave.ListRequests)
					r.Get("/{id}", h.Leave.GetRequest)
					r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{id}/decision", h.Leave.DecideRequest)
				})

				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/balances/{employeeId}", h.Leave.GetBalances)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/reports/export", h.Leave.ExportReport)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/records", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionPayrollViewOwn)).Get("/", h.Payroll.ListPayrollRecords)
					r.Get("/{id}", h.Payroll.GetPayrollRecord)
					r.Get("/{id}/payslip", h.Payroll.DownloadPayslip)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
						r.Post("/", h.Payroll.CreatePayrollRecord)
						r.Put("/{id}/status", h.Payroll.UpdatePayrollStatus)
					})
				})

				r.Route("/advances", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionAdvanceCreate)).Post("/", h.Payroll.RequestAdvance)
					r.With(middleware.RequirePermission(user.PermissionAdvanceCreate)).Get("/", h.Payroll.ListAdvances)
					r.With(middleware.RequirePermission(user.PermissionAdvanceApprove)).Put("/{id}/decision", h.Payroll.DecideAdvance)
				})
			})

			r.Route("/performance/reviews", func(r chi.Router) {
				r.Get("/", h.Performance.ListReviews)
				r.Get("/{id}", h.Performance.GetReview)
				r.Post("/{id}/acknowledge", h.Performance.AcknowledgeReview)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPerformanceManage))
					r.Post("/", h.Performance.CreateReview)
					r.Put("/{id}", h.Performance.UpdateReview)
					r.Post("/{id}/submit", h.Performance.SubmitReview)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionDashboardViewAdmin)).Get("/admin", h.Dashboard.GetAdminDashboard)
				r.Get("/employee", h.Dashboard.GetEmployeeDashboard)
			})
		})
	}
}
