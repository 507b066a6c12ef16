package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(s *store) *RequestValidator {
	repos := s.repositories()
	calc := NewBalanceCalculator(repos.Policies, repos.Balances, repos.Requests, repos.Employees, fixedClock(today))
	return NewRequestValidator(repos.Policies, repos.Employees, repos.Requests, repos.Holidays, calc, fixedClock(today))
}

func TestRequestValidator_Validate(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(s *store)
		employeeID string
		typeID     string
		start, end time.Time
		wantValid  bool
		wantDays   int
		wantErrors []string
	}{
		{
			name:  "valid request skips holiday",
			start: date(2025, time.March, 17), end: date(2025, time.March, 21),
			wantValid: true, wantDays: 4,
		},
		{
			name:  "weekend only request is accepted with zero days",
			start: date(2025, time.March, 15), end: date(2025, time.March, 16),
			wantValid: true, wantDays: 0,
		},
		{
			name:  "end before start",
			start: date(2025, time.March, 21), end: date(2025, time.March, 17),
			wantErrors: []string{"end date must not be before start date"},
		},
		{
			name: "probation",
			setup: func(s *store) {
				s.employees["e-new"] = employee.Employee{
					ID: "e-new", TenantID: "t1", HireDate: date(2025, time.March, 1),
					EmploymentStatus: employee.EmploymentStatusActive,
				}
			},
			employeeID: "e-new",
			start:      date(2025, time.March, 17), end: date(2025, time.March, 18),
			wantDays:   2,
			wantErrors: []string{"employee is still in probation (9 of 90 days)"},
		},
		{
			name:  "short notice",
			start: date(2025, time.March, 11), end: date(2025, time.March, 11),
			wantDays:   1,
			wantErrors: []string{"leave requires at least 3 days notice"},
		},
		{
			name:  "per request cap",
			start: date(2025, time.March, 17), end: date(2025, time.April, 1),
			wantDays:   11,
			wantErrors: []string{"request exceeds the maximum of 10 days per request"},
		},
		{
			name: "insufficient balance",
			setup: func(s *store) {
				s.requests["r-jan"] = leave.LeaveRequest{
					ID: "r-jan", TenantID: "t1", EmployeeID: "e1", LeaveTypeID: "annual",
					StartDate: date(2025, time.January, 6), EndDate: date(2025, time.January, 17),
					TotalDays: 10, Status: leave.LeaveRequestStatusApproved,
				}
			},
			start: date(2025, time.March, 17), end: date(2025, time.March, 20),
			wantDays:   3,
			wantErrors: []string{"insufficient leave balance: requested 3, available 2"},
		},
		{
			name: "negative balance allowed by policy",
			setup: func(s *store) {
				s.requests["r-jan"] = leave.LeaveRequest{
					ID: "r-jan", TenantID: "t1", EmployeeID: "e1", LeaveTypeID: "annual",
					StartDate: date(2025, time.January, 6), EndDate: date(2025, time.January, 17),
					TotalDays: 10, Status: leave.LeaveRequestStatusApproved,
				}
				p := s.policies["p-annual"]
				p.AllowNegativeBalance = true
				s.policies["p-annual"] = p
			},
			start: date(2025, time.March, 17), end: date(2025, time.March, 20),
			wantValid: true, wantDays: 3,
		},
		{
			name: "overlap with pending request",
			setup: func(s *store) {
				s.requests["r-pending"] = leave.LeaveRequest{
					ID: "r-pending", TenantID: "t1", EmployeeID: "e1", LeaveTypeID: "annual",
					StartDate: date(2025, time.March, 18), EndDate: date(2025, time.March, 18),
					TotalDays: 1, Status: leave.LeaveRequestStatusPending,
				}
			},
			start: date(2025, time.March, 17), end: date(2025, time.March, 18),
			wantDays:   2,
			wantErrors: []string{"request overlaps an existing pending or approved request"},
		},
		{
			name: "rejected request does not overlap",
			setup: func(s *store) {
				s.requests["r-rejected"] = leave.LeaveRequest{
					ID: "r-rejected", TenantID: "t1", EmployeeID: "e1", LeaveTypeID: "annual",
					StartDate: date(2025, time.March, 18), EndDate: date(2025, time.March, 18),
					TotalDays: 1, Status: leave.LeaveRequestStatusRejected,
				}
			},
			start: date(2025, time.March, 17), end: date(2025, time.March, 18),
			wantValid: true, wantDays: 2,
		},
		{
			name:       "unknown employee",
			employeeID: "ghost",
			start:      date(2025, time.March, 17), end: date(2025, time.March, 18),
			wantDays:   2,
			wantErrors: []string{"employee not found"},
		},
		{
			name:   "no active policy",
			typeID: "sick",
			start:  date(2025, time.March, 17), end: date(2025, time.March, 18),
			wantDays:   2,
			wantErrors: []string{"no active leave policy for this leave type"},
		},
		{
			name:  "independent checks accumulate",
			start: date(2025, time.March, 11), end: date(2025, time.March, 31),
			wantDays: 14,
			wantErrors: []string{
				"leave requires at least 3 days notice",
				"request exceeds the maximum of 10 days per request",
				"insufficient leave balance: requested 14, available 12",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f.store)
			}
			employeeID, typeID := tt.employeeID, tt.typeID
			if employeeID == "" {
				employeeID = "e1"
			}
			if typeID == "" {
				typeID = "annual"
			}

			result, err := newValidator(f.store).Validate(context.Background(), "t1", employeeID, typeID, tt.start, tt.end)
			require.NoError(t, err)

			assert.Equal(t, tt.wantValid, result.IsValid)
			assert.Equal(t, tt.wantDays, result.TotalDays)
			if tt.wantErrors == nil {
				assert.Empty(t, result.Errors)
			} else {
				assert.ElementsMatch(t, tt.wantErrors, result.Errors)
			}
		})
	}
}
