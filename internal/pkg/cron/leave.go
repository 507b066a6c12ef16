package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// TenantLister yields tenants with active employees.
type TenantLister interface {
	ListActiveTenants(ctx context.Context) ([]string, error)
}

// BalanceRefresher recomputes every balance of a tenant for a year.
type BalanceRefresher interface {
	RefreshTenantBalances(ctx context.Context, tenantID string, year int) (int, error)
}

const AccrualRefreshJob = "leave-accrual-refresh"

// LeaveJobs keeps stored balances in step with accrual as months complete.
type LeaveJobs struct {
	tenants  TenantLister
	balances BalanceRefresher
	now      func() time.Time
}

func NewLeaveJobs(tenants TenantLister, balances BalanceRefresher) *LeaveJobs {
	return &LeaveJobs{tenants: tenants, balances: balances, now: time.Now}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(AccrualRefreshJob, 24*time.Hour, j.RefreshAccruals)
}

// RefreshAccruals recalculates current-year balances for every tenant.
func (j *LeaveJobs) RefreshAccruals(ctx context.Context) error {
	year := j.now().UTC().Year()

	tenantIDs, err := j.tenants.ListActiveTenants(ctx)
	if err != nil {
		return fmt.Errorf("list tenants: %w", err)
	}

	var failed, refreshed int
	for _, tenantID := range tenantIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := j.balances.RefreshTenantBalances(ctx, tenantID, year)
		if err != nil {
			failed++
			slog.Error("Failed to refresh leave balances", "tenant_id", tenantID, "year", year, "error", err)
			continue
		}
		refreshed += n
	}

	slog.Info("Leave accrual refresh completed", "year", year, "tenants", len(tenantIDs), "balances", refreshed, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("accrual refresh failed for %d tenants", failed)
	}
	return nil
}
