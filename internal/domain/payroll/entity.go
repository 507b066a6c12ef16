package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft     PayrollStatus = "DRAFT"
	PayrollStatusProcessed PayrollStatus = "PROCESSED"
	PayrollStatusPaid      PayrollStatus = "PAID"
)

// CanTransitionTo allows DRAFT -> PROCESSED -> PAID only.
func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	switch s {
	case PayrollStatusDraft:
		return next == PayrollStatusProcessed
	case PayrollStatusProcessed:
		return next == PayrollStatusPaid
	}
	return false
}

// PayrollRecord - Generated payroll result
type PayrollRecord struct {
	ID               string
	TenantID         string
	EmployeeID       string
	PeriodMonth      int
	PeriodYear       int
	BaseSalary       decimal.Decimal
	TotalAllowances  decimal.Decimal
	TotalDeductions  decimal.Decimal
	AdvanceDeduction decimal.Decimal
	Tax              decimal.Decimal
	NetPay           decimal.Decimal
	Status           PayrollStatus
	ProcessedAt      *time.Time
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Gross is base salary plus allowances.
func (r PayrollRecord) Gross() decimal.Decimal {
	return r.BaseSalary.Add(r.TotalAllowances)
}

type AdvanceStatus string

const (
	AdvanceStatusPending  AdvanceStatus = "PENDING"
	AdvanceStatusApproved AdvanceStatus = "APPROVED"
	AdvanceStatusRejected AdvanceStatus = "REJECTED"
	AdvanceStatusRepaid   AdvanceStatus = "REPAID"
)

func (s AdvanceStatus) IsValid() bool {
	switch s {
	case AdvanceStatusPending, AdvanceStatusApproved, AdvanceStatusRejected, AdvanceStatusRepaid:
		return true
	}
	return false
}

// SalaryAdvance is repaid by deduction from the next payroll record.
type SalaryAdvance struct {
	ID         string
	TenantID   string
	EmployeeID string
	Amount     decimal.Decimal
	Reason     string
	Status     AdvanceStatus
	DecidedBy  *string
	DecidedAt  *time.Time
	RepaidIn   *string // payroll record id
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}
