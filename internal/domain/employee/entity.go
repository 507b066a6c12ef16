package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	TenantID         string
	UserID           *string
	EmployeeCode     string
	FullName         string
	Email            string
	Position         string
	DepartmentID     *string
	BranchID         *string
	HireDate         time.Time
	EmploymentStatus EmploymentStatus
	BaseSalary       decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join
	UserRole       *string
	DepartmentName *string
	BranchName     *string
}

// PositionOperationsManager is routed to HR for approvals regardless of branch.
const PositionOperationsManager = "Operations Manager"

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "ACTIVE"
	EmploymentStatusOnLeave    EmploymentStatus = "ON_LEAVE"
	EmploymentStatusTerminated EmploymentStatus = "TERMINATED"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusOnLeave, EmploymentStatusTerminated:
		return true
	}
	return false
}
