package leave

import (
	"context"
)

type LeaveService interface {
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateType(ctx context.Context, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	DeactivateType(ctx context.Context, id string) error

	ListPolicies(ctx context.Context, leaveTypeID *string) ([]LeavePolicyResponse, error)
	CreatePolicy(ctx context.Context, req CreateLeavePolicyRequest) (LeavePolicyResponse, error)
	UpdatePolicy(ctx context.Context, req UpdateLeavePolicyRequest) (LeavePolicyResponse, error)

	SubmitRequest(ctx context.Context, req SubmitLeaveRequestRequest) (SubmitLeaveResponse, error)
	ListRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	DecideRequest(ctx context.Context, req DecisionRequest) (LeaveRequestResponse, error)

	GetBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)

	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}

// BalanceMaintainer is used by background jobs, outside any request identity.
type BalanceMaintainer interface {
	InitializeBalances(ctx context.Context, tenantID, employeeID string, year int) error
	RefreshTenantBalances(ctx context.Context, tenantID string, year int) (int, error)
}
