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
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jobs"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	leaveService "github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App).With(slog.String("component", "worker"))
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.PoolOptions()...)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	mailer, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		logger.Error("init email service", slog.Any("error", err))
		os.Exit(1)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	// Rollover only recomputes balances, so no enqueuer or cache is needed here.
	leaveSvc := leaveService.NewLeaveService(leaveService.Repositories{
		Types:     postgresql.NewLeaveTypeRepository(db),
		Policies:  postgresql.NewLeavePolicyRepository(db),
		Balances:  postgresql.NewLeaveBalanceRepository(db),
		Requests:  postgresql.NewLeaveRequestRepository(db),
		Holidays:  postgresql.NewHolidayRepository(db),
		Employees: employeeRepo,
		Branches:  postgresql.NewBranchRepository(db),
		Users:     postgresql.NewUserRepository(db),
	}, postgresql.NewTransactor(db), nil, nil, nil)

	rolloverTask, err := jobs.NewLeaveRolloverTask(0)
	if err != nil {
		logger.Error("build rollover task", slog.Any("error", err))
		os.Exit(1)
	}

	rolloverSpec := cfg.Worker.RolloverCron
	if rolloverSpec == "" {
		rolloverSpec = jobs.RolloverCron
	}

	m := metrics.NewMetrics()
	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Concurrency: cfg.Worker.Concurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeSendEmail, Handler: jobs.SendEmailHandler(mailer)},
			{Type: jobs.TaskTypeLeaveRollover, Handler: jobs.LeaveRolloverHandler(employeeRepo, leaveSvc, time.Now)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: rolloverSpec, Task: rolloverTask, Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)}},
		},
		Metrics: m,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", m.Handler())
	metricsServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Worker.MetricsPort), Handler: r}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server", slog.Any("error", err))
		}
	}()

	logger.Info("worker started", slog.Int("concurrency", cfg.Worker.Concurrency), slog.String("rollover_cron", rolloverSpec))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("metrics server shutdown", slog.Any("error", err))
	}
	logger.Info("worker shutdown complete")
}
