package payroll

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollRecordResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employeeId"`
	EmployeeName     *string         `json:"employeeName,omitempty"`
	EmployeeCode     *string         `json:"employeeCode,omitempty"`
	PeriodMonth      int             `json:"periodMonth"`
	PeriodYear       int             `json:"periodYear"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	TotalAllowances  decimal.Decimal `json:"totalAllowances"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	AdvanceDeduction decimal.Decimal `json:"advanceDeduction"`
	Tax              decimal.Decimal `json:"tax"`
	NetPay           decimal.Decimal `json:"netPay"`
	Status           string          `json:"status"`
	ProcessedAt      *time.Time      `json:"processedAt,omitempty"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func ToRecordResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		EmployeeCode:     r.EmployeeCode,
		PeriodMonth:      r.PeriodMonth,
		PeriodYear:       r.PeriodYear,
		BaseSalary:       r.BaseSalary,
		TotalAllowances:  r.TotalAllowances,
		TotalDeductions:  r.TotalDeductions,
		AdvanceDeduction: r.AdvanceDeduction,
		Tax:              r.Tax,
		NetPay:           r.NetPay,
		Status:           string(r.Status),
		ProcessedAt:      r.ProcessedAt,
		PaidAt:           r.PaidAt,
		CreatedAt:        r.CreatedAt,
	}
}

type ListPayrollResponse struct {
	Records    []PayrollRecordResponse `json:"records"`
	TotalCount int64                   `json:"totalCount"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PayrollFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Status     *string
	Page       int
	Limit      int
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if f.Status != nil {
		s := PayrollStatus(*f.Status)
		if s != PayrollStatusDraft && s != PayrollStatusProcessed && s != PayrollStatusPaid {
			errs.Add("status", "status must be DRAFT, PROCESSED or PAID")
		}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	return errs.Err()
}

type CreatePayrollRecordRequest struct {
	EmployeeID      string          `json:"employeeId"`
	PeriodMonth     int             `json:"periodMonth" validate:"gte=1,lte=12"`
	PeriodYear      int             `json:"periodYear" validate:"gte=2000,lte=2100"`
	TotalAllowances decimal.Decimal `json:"totalAllowances"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
}

func (r *CreatePayrollRecordRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	if r.TotalAllowances.IsNegative() {
		errs.Add("totalAllowances", "totalAllowances must not be negative")
	}
	if r.TotalDeductions.IsNegative() {
		errs.Add("totalDeductions", "totalDeductions must not be negative")
	}

	return errs.Err()
}

type UpdatePayrollStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdatePayrollStatusRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Status = strings.ToUpper(r.Status)

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Status != string(PayrollStatusProcessed) && r.Status != string(PayrollStatusPaid) {
		errs.Add("status", "status must be PROCESSED or PAID")
	}

	return errs.Err()
}

type SalaryAdvanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName *string         `json:"employeeName,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	DecidedBy    *string         `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time      `json:"decidedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func ToAdvanceResponse(a SalaryAdvance) SalaryAdvanceResponse {
	return SalaryAdvanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Amount:       a.Amount,
		Reason:       a.Reason,
		Status:       string(a.Status),
		DecidedBy:    a.DecidedBy,
		DecidedAt:    a.DecidedAt,
		CreatedAt:    a.CreatedAt,
	}
}

type ListAdvanceResponse struct {
	Advances   []SalaryAdvanceResponse `json:"advances"`
	TotalCount int64                   `json:"totalCount"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type AdvanceFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

func (f *AdvanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !AdvanceStatus(*f.Status).IsValid() {
		errs.Add("status", "invalid advance status")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	return errs.Err()
}

type CreateAdvanceRequest struct {
	EmployeeID string          `json:"employeeId"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason" validate:"required,max=500"`
}

func (r *CreateAdvanceRequest) Validate() error {
	errs := validator.Struct(r)

	if !r.Amount.IsPositive() {
		errs.Add("amount", "amount must be greater than 0")
	}

	return errs.Err()
}

type DecideAdvanceRequest struct {
	ID       string `json:"-"`
	Decision string `json:"decision"`
}

func (r *DecideAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Decision = strings.ToUpper(r.Decision)

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Decision != string(AdvanceStatusApproved) && r.Decision != string(AdvanceStatusRejected) {
		errs.Add("decision", "decision must be APPROVED or REJECTED")
	}

	return errs.Err()
}
