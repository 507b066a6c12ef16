package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// HeadcountStats combines all employee status counts in single query
type HeadcountStats struct {
	Total      int64
	Active     int64
	OnLeave    int64
	Terminated int64
	NewHires   int64
}

// LeaveStats combines leave counters in single query
type LeaveStats struct {
	OnLeaveToday      int64
	PendingRequests   int64
	ApprovedDaysMonth int64
}

type PayrollStats struct {
	Records             int64
	TotalNetPay         decimal.Decimal
	TotalTax            decimal.Decimal
	OutstandingAdvances decimal.Decimal
}

type PerformanceStats struct {
	AverageRating float64
	Reviews       int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetHeadcount counts employees per status; newHires counts hire_date >= since
	GetHeadcount(ctx context.Context, tenantID string, since time.Time) (HeadcountStats, error)

	// GetLeaveStats counts leave activity for the given day and month
	GetLeaveStats(ctx context.Context, tenantID string, day time.Time) (LeaveStats, error)

	// GetLeaveDaysByType sums approved working days per leave type in the month of day
	GetLeaveDaysByType(ctx context.Context, tenantID string, day time.Time) ([]GroupCount, error)

	GetHeadcountByDepartment(ctx context.Context, tenantID string) ([]GroupCount, error)
	GetHeadcountByBranch(ctx context.Context, tenantID string) ([]GroupCount, error)

	GetPayrollStats(ctx context.Context, tenantID string, year, month int) (PayrollStats, error)
	GetPerformanceStats(ctx context.Context, tenantID string) (PerformanceStats, error)
}
