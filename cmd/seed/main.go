// Command seed onboards a tenant with its first administrator and default master data.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/tenant"
	appHTTP "github.com/cmlabs-hris/hrms-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	tenantService "github.com/cmlabs-hris/hrms-backend-go/internal/service/tenant"
	"github.com/spf13/cobra"
)

const adminPasswordEnv = "SEED_ADMIN_PASSWORD"

var errMissingPassword = errors.New(adminPasswordEnv + " must be set")

type seedOptions struct {
	request tenant.OnboardRequest
	migrate bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newSeedCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Onboard a tenant with its first administrator",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Kept out of flags so it does not end up in shell history.
			opts.request.AdminPassword = os.Getenv(adminPasswordEnv)
			if opts.request.AdminPassword == "" {
				return errMissingPassword
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.request.Name, "name", "", "tenant display name (required)")
	cmd.Flags().StringVar(&opts.request.Slug, "slug", "", "tenant slug: lowercase letters, digits, dashes (required)")
	cmd.Flags().StringVar(&opts.request.AdminEmail, "admin-email", "", "email of the first administrator (required)")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply migrations before onboarding")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("slug")
	_ = cmd.MarkFlagRequired("admin-email")

	return cmd
}

func run(ctx context.Context, opts seedOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := appHTTP.NewLogger(cfg.App).With(slog.String("component", "seed"))
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.PoolOptions()...)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if opts.migrate {
		if err := db.Migrate(ctx, cfg.Database.MigrationsDir); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	onboarder := tenantService.NewOnboarder(tenantService.OnboardingRepositories{
		Tenants:     postgresql.NewTenantWriter(db),
		Users:       postgresql.NewUserRepository(db),
		Branches:    postgresql.NewBranchRepository(db),
		Departments: postgresql.NewDepartmentRepository(db),
		LeaveTypes:  postgresql.NewLeaveTypeRepository(db),
		Policies:    postgresql.NewLeavePolicyRepository(db),
	}, postgresql.NewTransactor(db))

	result, err := onboarder.Onboard(ctx, opts.request)
	if err != nil {
		return fmt.Errorf("onboard tenant: %w", err)
	}

	logger.Info("Tenant onboarded",
		"tenant_id", result.Tenant.ID,
		"slug", result.Tenant.Slug,
		"admin_user_id", result.AdminUserID,
		"leave_types", result.LeaveTypes,
	)
	return nil
}
