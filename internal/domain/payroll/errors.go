package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrInvalidStatusTransition    = errors.New("invalid payroll status transition")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrEmployeeHasNoBaseSalary    = errors.New("employee has no base salary configured")
	ErrAdvanceNotFound            = errors.New("salary advance not found")
	ErrAdvanceAlreadyDecided      = errors.New("salary advance already decided")
	ErrAdvanceExceedsLimit        = errors.New("salary advance exceeds 50% of base salary")
	ErrAdvanceOutstanding         = errors.New("employee already has an outstanding salary advance")
)

var ErrUnauthorizedAccess = errors.New("not allowed to access payroll data of another employee")
