package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, tenantID, id string) (LeaveType, error)
	List(ctx context.Context, tenantID string, activeOnly bool) ([]LeaveType, error)
	ExistsByCode(ctx context.Context, tenantID, code string) (bool, error)
	Update(ctx context.Context, tenantID string, req UpdateLeaveTypeRequest) error
	Deactivate(ctx context.Context, tenantID, id string) error
}

type LeavePolicyRepository interface {
	Create(ctx context.Context, policy LeavePolicy) (LeavePolicy, error)
	GetByID(ctx context.Context, tenantID, id string) (LeavePolicy, error)
	List(ctx context.Context, tenantID string, leaveTypeID *string) ([]LeavePolicy, error)
	Update(ctx context.Context, policy LeavePolicy) error
	// FindEffective returns the active policy effective at t with the latest effective date.
	FindEffective(ctx context.Context, tenantID, leaveTypeID string, at time.Time) (LeavePolicy, error)
}

type LeaveBalanceRepository interface {
	Get(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	ListByEmployee(ctx context.Context, tenantID, employeeID string, year int) ([]LeaveBalance, error)
	Upsert(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	// Lock serializes recalculation of one (employee, leave type, year) until the surrounding transaction ends.
	Lock(ctx context.Context, employeeID, leaveTypeID string, year int) error
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, tenantID, id string) (LeaveRequest, error)
	List(ctx context.Context, tenantID string, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	ExistsOverlapping(ctx context.Context, tenantID, employeeID string, start, end time.Time) (bool, error)
	// LockEmployee serializes submissions of one employee across leave types until the surrounding transaction ends.
	LockEmployee(ctx context.Context, employeeID string) error
	SumDays(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int, status LeaveRequestStatus) (int, error)
	// UpdateDecision persists a decision only while the row is still PENDING.
	UpdateDecision(ctx context.Context, request LeaveRequest) error
}

type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	ListActiveBetween(ctx context.Context, tenantID string, start, end time.Time) ([]Holiday, error)
	ListByYear(ctx context.Context, tenantID string, year int) ([]Holiday, error)
	ExistsOnDate(ctx context.Context, tenantID string, date time.Time) (bool, error)
	Delete(ctx context.Context, tenantID, id string) error
}
