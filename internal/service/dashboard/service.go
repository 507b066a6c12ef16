package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cache"
	"golang.org/x/sync/errgroup"
)

const recentRequestLimit = 5

// LeaveReader is the part of the leave service the employee dashboard reads.
type LeaveReader interface {
	GetBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error)
	ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error)
}

// PayslipReader returns the newest payroll record of an employee.
type PayslipReader interface {
	LatestForEmployee(ctx context.Context, tenantID, employeeID string) (payroll.PayrollRecord, error)
}

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	employees employee.EmployeeRepository
	leave     LeaveReader
	payslips  PayslipReader
	cache     *cache.Cache
	now       func() time.Time
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	employees employee.EmployeeRepository,
	leaveReader LeaveReader,
	payslips PayslipReader,
	c *cache.Cache,
) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		employees:           employees,
		leave:               leaveReader,
		payslips:            payslips,
		cache:               c,
		now:                 time.Now,
	}
}

// GetAdminDashboard returns the tenant overview, served from Redis while the tenant's version is unchanged.
func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context) (dashboard.AdminDashboardResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}
	if !id.Can(user.PermissionDashboardViewAdmin) {
		return dashboard.AdminDashboardResponse{}, dashboard.ErrAdminDashboardForbidden
	}

	now := s.now()
	day := now.Format("2006-01-02")

	key, err := s.cache.BuildKey(ctx, id.TenantID, "dashboard", "admin", day)
	if err != nil {
		slog.Warn("Dashboard cache unavailable, computing directly", "tenant_id", id.TenantID, "error", err)
		return s.buildAdminDashboard(ctx, id.TenantID, now)
	}
	version, _ := s.cache.Version(ctx, id.TenantID)

	var resp dashboard.AdminDashboardResponse
	err = s.cache.FetchJSON(ctx, key, &resp, func(ctx context.Context) (interface{}, error) {
		built, err := s.buildAdminDashboard(ctx, id.TenantID, now)
		if err != nil {
			return nil, err
		}
		built.CacheVersion = version
		return built, nil
	})
	if err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}
	return resp, nil
}

// buildAdminDashboard runs each aggregate query in its own goroutine.
func (s *DashboardServiceImpl) buildAdminDashboard(ctx context.Context, tenantID string, now time.Time) (dashboard.AdminDashboardResponse, error) {
	year, month := now.Year(), int(now.Month())
	since := now.AddDate(0, 0, -30)
	monthLabel := now.Format("2006-01")

	var (
		headcount   dashboard.HeadcountStats
		leaveStats  dashboard.LeaveStats
		daysByType  []dashboard.GroupCount
		departments []dashboard.GroupCount
		branches    []dashboard.GroupCount
		payrollSum  dashboard.PayrollStats
		perfStats   dashboard.PerformanceStats
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Headcount per status
	g.Go(func() error {
		var err error
		headcount, err = s.GetHeadcount(gCtx, tenantID, since)
		return err
	})

	// 2. Leave counters for today and this month
	g.Go(func() error {
		var err error
		leaveStats, err = s.GetLeaveStats(gCtx, tenantID, now)
		return err
	})

	// 3. Approved leave days by type
	g.Go(func() error {
		var err error
		daysByType, err = s.GetLeaveDaysByType(gCtx, tenantID, now)
		return err
	})

	// 4. Headcount by department
	g.Go(func() error {
		var err error
		departments, err = s.GetHeadcountByDepartment(gCtx, tenantID)
		return err
	})

	// 5. Headcount by branch
	g.Go(func() error {
		var err error
		branches, err = s.GetHeadcountByBranch(gCtx, tenantID)
		return err
	})

	// 6. Payroll totals and outstanding advances
	g.Go(func() error {
		var err error
		payrollSum, err = s.GetPayrollStats(gCtx, tenantID, year, month)
		return err
	})

	// 7. Review ratings
	g.Go(func() error {
		var err error
		perfStats, err = s.GetPerformanceStats(gCtx, tenantID)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminDashboardResponse{}, fmt.Errorf("failed to load dashboard: %w", err)
	}

	return dashboard.AdminDashboardResponse{
		Headcount: dashboard.HeadcountResponse{
			Total:      headcount.Total,
			Active:     headcount.Active,
			OnLeave:    headcount.OnLeave,
			Terminated: headcount.Terminated,
			NewHires:   headcount.NewHires,
		},
		Leave: dashboard.LeaveStatsResponse{
			OnLeaveToday:      leaveStats.OnLeaveToday,
			PendingRequests:   leaveStats.PendingRequests,
			ApprovedDaysMonth: leaveStats.ApprovedDaysMonth,
			DaysByType:        nonNil(daysByType),
			Month:             monthLabel,
		},
		Departments: nonNil(departments),
		Branches:    nonNil(branches),
		Payroll: dashboard.PayrollStatsResponse{
			Records:             payrollSum.Records,
			TotalNetPay:         payrollSum.TotalNetPay,
			TotalTax:            payrollSum.TotalTax,
			OutstandingAdvances: payrollSum.OutstandingAdvances,
			Month:               monthLabel,
		},
		Performance: dashboard.PerformanceResponse{
			AverageRating: perfStats.AverageRating,
			Reviews:       perfStats.Reviews,
		},
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}, nil
}

// GetEmployeeDashboard is not cached; it reads the caller's own rows only.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context) (dashboard.EmployeeDashboardResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}
	if id.EmployeeID == nil {
		return dashboard.EmployeeDashboardResponse{}, dashboard.ErrNoEmployeeProfile
	}
	employeeID := *id.EmployeeID
	year := s.now().Year()

	emp, err := s.employees.GetByID(ctx, id.TenantID, employeeID)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	resp := dashboard.EmployeeDashboardResponse{
		EmployeeID: emp.ID,
		FullName:   emp.FullName,
		Year:       year,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balances, err := s.leave.GetBalances(gCtx, employeeID, year)
		if err != nil {
			return fmt.Errorf("balances: %w", err)
		}
		resp.Balances = balances
		return nil
	})

	g.Go(func() error {
		requests, err := s.leave.ListRequests(gCtx, leave.LeaveRequestFilter{
			EmployeeID: &employeeID,
			Page:       1,
			Limit:      recentRequestLimit,
		})
		if err != nil {
			return fmt.Errorf("recent requests: %w", err)
		}
		resp.RecentRequests = requests.Requests
		return nil
	})

	g.Go(func() error {
		record, err := s.payslips.LatestForEmployee(gCtx, id.TenantID, employeeID)
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("latest payslip: %w", err)
		}
		if record.Status == payroll.PayrollStatusDraft {
			return nil
		}
		resp.LatestPayslip = &dashboard.PayslipSummary{
			RecordID:    record.ID,
			PeriodMonth: record.PeriodMonth,
			PeriodYear:  record.PeriodYear,
			NetPay:      record.NetPay,
			Status:      string(record.Status),
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}
	if resp.Balances == nil {
		resp.Balances = []leave.LeaveBalanceResponse{}
	}
	if resp.RecentRequests == nil {
		resp.RecentRequests = []leave.LeaveRequestResponse{}
	}
	return resp, nil
}

func nonNil(groups []dashboard.GroupCount) []dashboard.GroupCount {
	if groups == nil {
		return []dashboard.GroupCount{}
	}
	return groups
}
