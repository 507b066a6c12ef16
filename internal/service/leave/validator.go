package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
)

// RequestValidator checks a prospective request against the effective policy.
// Business-rule failures are reported in the result; only infrastructure failures return an error.
type RequestValidator struct {
	policies   leave.LeavePolicyRepository
	employees  employee.EmployeeRepository
	requests   leave.LeaveRequestRepository
	holidays   leave.HolidayRepository
	calculator *BalanceCalculator
	now        func() time.Time
}

func NewRequestValidator(
	policies leave.LeavePolicyRepository,
	employees employee.EmployeeRepository,
	requests leave.LeaveRequestRepository,
	holidays leave.HolidayRepository,
	calculator *BalanceCalculator,
	now func() time.Time,
) *RequestValidator {
	if now == nil {
		now = time.Now
	}
	return &RequestValidator{
		policies:   policies,
		employees:  employees,
		requests:   requests,
		holidays:   holidays,
		calculator: calculator,
		now:        now,
	}
}

func (v *RequestValidator) Validate(ctx context.Context, tenantID, employeeID, leaveTypeID string, start, end time.Time) (leave.ValidationResult, error) {
	result := leave.ValidationResult{Errors: []string{}}
	today := dateOnly(v.now())
	start, end = dateOnly(start), dateOnly(end)

	if end.Before(start) {
		result.Errors = append(result.Errors, "end date must not be before start date")
	}

	policy, err := v.policies.FindEffective(ctx, tenantID, leaveTypeID, v.now())
	hasPolicy := err == nil
	if err != nil {
		if !errors.Is(err, leave.ErrPolicyNotFound) {
			return result, fmt.Errorf("find effective policy: %w", err)
		}
		result.Errors = append(result.Errors, "no active leave policy for this leave type")
	}

	emp, err := v.employees.GetByID(ctx, tenantID, employeeID)
	hasEmployee := err == nil
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return result, fmt.Errorf("get employee: %w", err)
		}
		result.Errors = append(result.Errors, "employee not found")
	}

	if !end.Before(start) {
		holidays, err := v.holidays.ListActiveBetween(ctx, tenantID, start, end)
		if err != nil {
			return result, fmt.Errorf("list holidays: %w", err)
		}
		result.TotalDays = CountWorkingDays(start, end, HolidaySet(holidays))
	}

	if hasPolicy && hasEmployee {
		if daysSinceHire := daysBetween(emp.HireDate, today); daysSinceHire < policy.ProbationPeriodDays {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"employee is still in probation (%d of %d days)", daysSinceHire, policy.ProbationPeriodDays))
		}
	}

	if hasPolicy {
		if daysUntilStart := daysBetween(today, start); daysUntilStart < policy.MinDaysNotice {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"leave requires at least %d days notice", policy.MinDaysNotice))
		}
		if policy.MaxDaysPerRequest > 0 && result.TotalDays > policy.MaxDaysPerRequest {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"request exceeds the maximum of %d days per request", policy.MaxDaysPerRequest))
		}
	}

	if hasPolicy && hasEmployee && !policy.AllowNegativeBalance {
		balance, err := v.calculator.Calculate(ctx, tenantID, employeeID, leaveTypeID, start.Year())
		if err != nil {
			return result, fmt.Errorf("calculate balance: %w", err)
		}
		if result.TotalDays > balance.Available {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"insufficient leave balance: requested %d, available %d", result.TotalDays, balance.Available))
		}
	}

	if hasEmployee && !end.Before(start) {
		overlapping, err := v.requests.ExistsOverlapping(ctx, tenantID, employeeID, start, end)
		if err != nil {
			return result, fmt.Errorf("check overlapping requests: %w", err)
		}
		if overlapping {
			result.Errors = append(result.Errors, "request overlaps an existing pending or approved request")
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result, nil
}
