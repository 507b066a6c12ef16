package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hrms-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jobs"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/mfa"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/tracing"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/hrms-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/hrms-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/master"
	payrollService "github.com/cmlabs-hris/hrms-backend-go/internal/service/payroll"
	performanceService "github.com/cmlabs-hris/hrms-backend-go/internal/service/performance"
	settingsService "github.com/cmlabs-hris/hrms-backend-go/internal/service/settings"
	tenantService "github.com/cmlabs-hris/hrms-backend-go/internal/service/tenant"
	userService "github.com/cmlabs-hris/hrms-backend-go/internal/service/user"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(cfg.App)
	slog.SetDefault(logger)

	shutdownTracing, err := tracing.Init(ctx, cfg.Telemetry.OTLPEndpoint, cfg.App.Name, cfg.App.Version, cfg.App.Env)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown", "error", err)
		}
	}()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.PoolOptions()...)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, cfg.Database.MigrationsDir); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", "error", err)
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", "error", err)
	}

	appCache := cache.NewCache(redisClient, cfg.Redis.CacheTTL)
	if err := appCache.ListenForInvalidation(ctx, func(scope string, version int64) {
		logger.Debug("cache version bumped", "scope", scope, "version", version)
	}); err != nil {
		logger.Warn("cache invalidation listener", "error", err)
	}

	m := metrics.NewMetrics()

	jobClient := jobs.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", "error", err)
		}
	}()

	taxRate, err := decimal.NewFromString(cfg.Payroll.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid PAYROLL_TAX_RATE: %w", err)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	tenantRepo := postgresql.NewTenantRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leavePolicyRepo := postgresql.NewLeavePolicyRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	reviewRepo := postgresql.NewReviewRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	settingsSvc := settingsService.NewSettingsService(settingsRepo)

	// Google login stays disabled unless configured; a nil interface makes the service report it.
	var googleService oauth.GoogleService
	if cfg.OAuth2Google.ClientID != "" {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService, settingsSvc, mfa.NewTOTP(cfg.App.Name), googleService)

	leaveSvc := leaveService.NewLeaveService(leaveService.Repositories{
		Types:     leaveTypeRepo,
		Policies:  leavePolicyRepo,
		Balances:  leaveBalanceRepo,
		Requests:  leaveRequestRepo,
		Holidays:  holidayRepo,
		Employees: employeeRepo,
		Branches:  branchRepo,
		Users:     userRepo,
	}, tx, jobClient, appCache, m)

	userSvc := userService.NewUserService(userRepo, settingsSvc)
	tenantSvc := tenantService.NewTenantService(tenantRepo)
	masterSvc := master.NewMasterService(branchRepo, departmentRepo, userRepo, appCache)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, userRepo, branchRepo, departmentRepo, leaveSvc, appCache)
	payrollSvc := payrollService.NewPayrollService(tx, payrollRepo, employeeRepo, tenantRepo, jobClient, appCache, taxRate)
	performanceSvc := performanceService.NewPerformanceService(reviewRepo, employeeRepo, appCache)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, employeeRepo, leaveSvc, payrollRepo, appCache)

	handlers := appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(JWTService, authSvc, cfg.App.FrontendURL, cfg.IsProduction()),
		Tenant:      appHTTP.NewTenantHandler(tenantSvc, demo.NewSelector[settings.SettingsService](settingsSvc, fixtures.DemoSettingsService{})),
		User:        appHTTP.NewUserHandler(demo.NewSelector[user.UserService](userSvc, fixtures.DemoUserService{})),
		Employee:    appHTTP.NewEmployeeHandler(demo.NewSelector[employee.EmployeeService](employeeSvc, fixtures.DemoEmployeeService{})),
		Master:      appHTTP.NewMasterHandler(masterSvc),
		Leave:       appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:     appHTTP.NewPayrollHandler(payrollSvc),
		Performance: appHTTP.NewPerformanceHandler(performanceSvc),
		Dashboard:   appHTTP.NewDashboardHandler(demo.NewSelector[dashboard.DashboardService](dashboardSvc, fixtures.NewDemoDashboardService())),
	}
	router := appHTTP.NewRouter(cfg, logger, JWTService, m, handlers)

	scheduler := cron.NewScheduler(m)
	cron.NewLeaveJobs(employeeRepo, leaveSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
