package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetHeadcount returns all status counts in a single query
func (r *dashboardRepositoryImpl) GetHeadcount(ctx context.Context, tenantID string, since time.Time) (dashboard.HeadcountStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN employment_status = 'ACTIVE' THEN 1 ELSE 0 END), 0) AS active_count,
			COALESCE(SUM(CASE WHEN employment_status = 'ON_LEAVE' THEN 1 ELSE 0 END), 0) AS on_leave_count,
			COALESCE(SUM(CASE WHEN employment_status = 'TERMINATED' THEN 1 ELSE 0 END), 0) AS terminated_count,
			COALESCE(SUM(CASE WHEN hire_date >= $2 THEN 1 ELSE 0 END), 0) AS new_hires
		FROM employees
		WHERE tenant_id = $1
	`

	var stats dashboard.HeadcountStats
	err := q.QueryRow(ctx, query, tenantID, since).Scan(
		&stats.Total, &stats.Active, &stats.OnLeave, &stats.Terminated, &stats.NewHires,
	)
	if err != nil {
		return dashboard.HeadcountStats{}, fmt.Errorf("failed to get headcount: %w", err)
	}
	return stats, nil
}

// GetLeaveStats counts today's absences, pending requests and approved days in the month
func (r *dashboardRepositoryImpl) GetLeaveStats(ctx context.Context, tenantID string, day time.Time) (dashboard.LeaveStats, error) {
	q := GetQuerier(ctx, r.db)

	startOfMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'APPROVED' AND start_date <= $2 AND end_date >= $2 THEN 1 ELSE 0 END), 0) AS on_leave_today,
			COALESCE(SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END), 0) AS pending_requests,
			COALESCE(SUM(CASE WHEN status = 'APPROVED' AND start_date >= $3 AND start_date < $4 THEN total_days ELSE 0 END), 0) AS approved_days
		FROM leave_requests
		WHERE tenant_id = $1
	`

	var stats dashboard.LeaveStats
	err := q.QueryRow(ctx, query, tenantID, day, startOfMonth, endOfMonth).Scan(
		&stats.OnLeaveToday, &stats.PendingRequests, &stats.ApprovedDaysMonth,
	)
	if err != nil {
		return dashboard.LeaveStats{}, fmt.Errorf("failed to get leave stats: %w", err)
	}
	return stats, nil
}

func (r *dashboardRepositoryImpl) GetLeaveDaysByType(ctx context.Context, tenantID string, day time.Time) ([]dashboard.GroupCount, error) {
	startOfMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	return r.groupCounts(ctx, `
		SELECT lt.name, COALESCE(SUM(lr.total_days), 0)
		FROM leave_types lt
		LEFT JOIN leave_requests lr ON lr.leave_type_id = lt.id
			AND lr.status = 'APPROVED' AND lr.start_date >= $2 AND lr.start_date < $3
		WHERE lt.tenant_id = $1 AND lt.is_active = TRUE
		GROUP BY lt.name
		ORDER BY lt.name
	`, tenantID, startOfMonth, endOfMonth)
}

func (r *dashboardRepositoryImpl) GetHeadcountByDepartment(ctx context.Context, tenantID string) ([]dashboard.GroupCount, error) {
	return r.groupCounts(ctx, `
		SELECT COALESCE(d.name, 'Unassigned'), COUNT(*)
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE e.tenant_id = $1 AND e.employment_status <> 'TERMINATED'
		GROUP BY d.name
		ORDER BY COUNT(*) DESC, 1
	`, tenantID)
}

func (r *dashboardRepositoryImpl) GetHeadcountByBranch(ctx context.Context, tenantID string) ([]dashboard.GroupCount, error) {
	return r.groupCounts(ctx, `
		SELECT COALESCE(b.name, 'Unassigned'), COUNT(*)
		FROM employees e
		LEFT JOIN branches b ON b.id = e.branch_id
		WHERE e.tenant_id = $1 AND e.employment_status <> 'TERMINATED'
		GROUP BY b.name
		ORDER BY COUNT(*) DESC, 1
	`, tenantID)
}

func (r *dashboardRepositoryImpl) groupCounts(ctx context.Context, query string, args ...interface{}) ([]dashboard.GroupCount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get group counts: %w", err)
	}
	defer rows.Close()

	counts := make([]dashboard.GroupCount, 0)
	for rows.Next() {
		var gc dashboard.GroupCount
		if err := rows.Scan(&gc.Label, &gc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, gc)
	}
	return counts, rows.Err()
}

// GetPayrollStats sums the period's records and all approved unpaid advances
func (r *dashboardRepositoryImpl) GetPayrollStats(ctx context.Context, tenantID string, year, month int) (dashboard.PayrollStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM payroll_records WHERE tenant_id = $1 AND period_year = $2 AND period_month = $3),
			(SELECT COALESCE(SUM(net_pay), 0) FROM payroll_records WHERE tenant_id = $1 AND period_year = $2 AND period_month = $3),
			(SELECT COALESCE(SUM(tax), 0) FROM payroll_records WHERE tenant_id = $1 AND period_year = $2 AND period_month = $3),
			(SELECT COALESCE(SUM(amount), 0) FROM salary_advances WHERE tenant_id = $1 AND status = 'APPROVED')
	`

	var stats dashboard.PayrollStats
	err := q.QueryRow(ctx, query, tenantID, year, month).Scan(
		&stats.Records, &stats.TotalNetPay, &stats.TotalTax, &stats.OutstandingAdvances,
	)
	if err != nil {
		return dashboard.PayrollStats{}, fmt.Errorf("failed to get payroll stats: %w", err)
	}
	return stats, nil
}

func (r *dashboardRepositoryImpl) GetPerformanceStats(ctx context.Context, tenantID string) (dashboard.PerformanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(AVG(rating), 0)::FLOAT8, COUNT(*)
		FROM performance_reviews
		WHERE tenant_id = $1 AND status <> 'DRAFT'
	`

	var stats dashboard.PerformanceStats
	if err := q.QueryRow(ctx, query, tenantID).Scan(&stats.AverageRating, &stats.Reviews); err != nil {
		return dashboard.PerformanceStats{}, fmt.Errorf("failed to get performance stats: %w", err)
	}
	return stats, nil
}
