package leave

import (
	"time"
)

// LeaveType entity
type LeaveType struct {
	ID        string
	TenantID  string
	Name      string
	Code      string
	Color     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeavePolicy holds the allocation and request rules of one leave type.
type LeavePolicy struct {
	ID          string
	TenantID    string
	LeaveTypeID string

	// Allocation Rules
	MaxDaysPerYear  int
	AccrualRate     float64 // days per completed month
	MaxCarryForward int

	// Request Rules
	ProbationPeriodDays  int
	MinDaysNotice        int
	MaxDaysPerRequest    int // 0 means no cap
	AllowNegativeBalance bool

	IsActive      bool
	EffectiveDate time.Time
	ExpiryDate    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveAt reports whether the policy applies at t.
func (p LeavePolicy) EffectiveAt(t time.Time) bool {
	if !p.IsActive || p.EffectiveDate.After(t) {
		return false
	}
	return p.ExpiryDate == nil || !p.ExpiryDate.Before(t)
}

// LeaveBalance is the persisted snapshot for (employee, leave type, year).
type LeaveBalance struct {
	ID             string
	TenantID       string
	EmployeeID     string
	LeaveTypeID    string
	Year           int
	Allocated      int
	Accrued        int
	CarriedForward int
	Used           int
	Pending        int
	Available      int
	UpdatedAt      time.Time

	// Join
	LeaveTypeName *string
	LeaveTypeCode *string
}

// ComputeAvailable applies available = allocated + carriedForward + accrued - used - pending.
func (b *LeaveBalance) ComputeAvailable() {
	b.Available = b.Allocated + b.CarriedForward + b.Accrued - b.Used - b.Pending
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "PENDING"
	LeaveRequestStatusApproved LeaveRequestStatus = "APPROVED"
	LeaveRequestStatusRejected LeaveRequestStatus = "REJECTED"
)

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		return true
	}
	return false
}

// Decision is the outcome applied to a PENDING request.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

func (d Decision) IsValid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// ApproverRole labels who a request was routed to.
type ApproverRole string

const (
	ApproverRoleHR            ApproverRole = "HR"
	ApproverRoleBranchManager ApproverRole = "BRANCH_MANAGER"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	TenantID    string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays int // working days
	Reason    string

	Status       LeaveRequestStatus
	ApproverID   *string
	ApproverRole *ApproverRole

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	EmployeeName  *string
	BranchID      *string
}

// Year is the balance year the request counts against.
func (r LeaveRequest) Year() int {
	return r.StartDate.Year()
}

type Holiday struct {
	ID        string
	TenantID  string
	Name      string
	Date      time.Time
	IsActive  bool
	CreatedAt time.Time
}

// DateKey is the lookup key used by the working-day calculator.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
