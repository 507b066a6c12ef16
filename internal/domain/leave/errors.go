package leave

import (
	"errors"
	"strings"
)

var (
	ErrLeaveTypeNotFound      = errors.New("leave type not found")
	ErrLeaveTypeCodeExists    = errors.New("leave type code already exists")
	ErrPolicyNotFound         = errors.New("no active leave policy for this leave type")
	ErrPolicyOverlap          = errors.New("another active policy is already effective for this leave type")
	ErrBalanceNotFound        = errors.New("leave balance not found")
	ErrLeaveRequestNotFound   = errors.New("leave request not found")
	ErrInvalidStateTransition = errors.New("leave request is not pending")
	ErrNotAssignedApprover    = errors.New("leave request is routed to another approver")
	ErrCannotDecideOwn        = errors.New("cannot decide own leave request")
	ErrNoApproverAvailable    = errors.New("no approver available for this employee")
	ErrHolidayNotFound        = errors.New("holiday not found")
	ErrHolidayExists          = errors.New("holiday already exists on this date")
	ErrUnauthorizedAccess     = errors.New("unauthorized access to leave data")
)

// RequestValidationError carries the accumulated business-rule failures of a submission.
type RequestValidationError struct {
	Errors []string
}

func (e *RequestValidationError) Error() string {
	return "leave request validation failed: " + strings.Join(e.Errors, "; ")
}
