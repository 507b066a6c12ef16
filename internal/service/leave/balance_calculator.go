package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// BalanceCalculator derives a LeaveBalance from policy, hire date and request history.
type BalanceCalculator struct {
	policies  leave.LeavePolicyRepository
	balances  leave.LeaveBalanceRepository
	requests  leave.LeaveRequestRepository
	employees employee.EmployeeRepository
	now       func() time.Time
}

func NewBalanceCalculator(
	policies leave.LeavePolicyRepository,
	balances leave.LeaveBalanceRepository,
	requests leave.LeaveRequestRepository,
	employees employee.EmployeeRepository,
	now func() time.Time,
) *BalanceCalculator {
	if now == nil {
		now = time.Now
	}
	return &BalanceCalculator{
		policies:  policies,
		balances:  balances,
		requests:  requests,
		employees: employees,
		now:       now,
	}
}

// Calculate computes the balance without persisting it.
func (c *BalanceCalculator) Calculate(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	now := c.now()

	emp, err := c.employees.GetByID(ctx, tenantID, employeeID)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	policy, err := c.policies.FindEffective(ctx, tenantID, leaveTypeID, now)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	hiredInYear := emp.HireDate.Year() == year

	used, err := c.requests.SumDays(ctx, tenantID, employeeID, leaveTypeID, year, leave.LeaveRequestStatusApproved)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("sum approved days: %w", err)
	}
	pending, err := c.requests.SumDays(ctx, tenantID, employeeID, leaveTypeID, year, leave.LeaveRequestStatusPending)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("sum pending days: %w", err)
	}

	carried := 0
	if !hiredInYear {
		prev, err := c.balances.Get(ctx, tenantID, employeeID, leaveTypeID, year-1)
		switch {
		case err == nil:
			carried = carryForward(prev.Available, policy.MaxCarryForward)
		case errors.Is(err, leave.ErrBalanceNotFound):
		default:
			return leave.LeaveBalance{}, fmt.Errorf("get previous balance: %w", err)
		}
	}

	accrued := 0
	if emp.HireDate.Year() <= year {
		accrued = accruedDays(policy.AccrualRate, monthsElapsed(year, now))
	}

	balance := leave.LeaveBalance{
		TenantID:       tenantID,
		EmployeeID:     employeeID,
		LeaveTypeID:    leaveTypeID,
		Year:           year,
		Allocated:      allocatedDays(policy.MaxDaysPerYear, emp.HireDate, year),
		Accrued:        accrued,
		CarriedForward: carried,
		Used:           used,
		Pending:        pending,
	}
	balance.ComputeAvailable()
	return balance, nil
}

// Recalculate locks the (employee, leave type, year) triple, recomputes and upserts.
// It must run inside a transaction so the lock is held until commit.
func (c *BalanceCalculator) Recalculate(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	if err := c.balances.Lock(ctx, employeeID, leaveTypeID, year); err != nil {
		return leave.LeaveBalance{}, err
	}

	balance, err := c.Calculate(ctx, tenantID, employeeID, leaveTypeID, year)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return c.balances.Upsert(ctx, balance)
}

// allocatedDays prorates by the months remaining from the hire month when hired in year.
// Years before the hire year allocate nothing.
func allocatedDays(maxDaysPerYear int, hireDate time.Time, year int) int {
	switch {
	case hireDate.Year() > year:
		return 0
	case hireDate.Year() < year:
		return maxDaysPerYear
	}
	monthsRemaining := 12 - (int(hireDate.Month()) - 1)
	return maxDaysPerYear * monthsRemaining / 12
}

// monthsElapsed counts completed months of year as seen from now.
func monthsElapsed(year int, now time.Time) int {
	switch {
	case year < now.Year():
		return 12
	case year > now.Year():
		return 0
	}
	return int(now.Month()) - 1
}

func accruedDays(rate float64, months int) int {
	if rate <= 0 || months <= 0 {
		return 0
	}
	return int(decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(int64(months))).Floor().IntPart())
}

func carryForward(previousAvailable, maxCarryForward int) int {
	carried := previousAvailable
	if carried > maxCarryForward {
		carried = maxCarryForward
	}
	if carried < 0 {
		return 0
	}
	return carried
}
