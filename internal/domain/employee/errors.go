package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeCodeExists  = errors.New("employee code already exists")
	ErrEmailExists         = errors.New("email already registered in this tenant")
	ErrInvalidEmployeeCode = errors.New("invalid employee code format")
	ErrUnauthorized        = errors.New("unauthorized to access this employee")
	ErrAlreadyTerminated   = errors.New("employee is already terminated")
)
