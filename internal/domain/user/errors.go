package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrInvalidRole             = errors.New("invalid role")
	ErrPasswordTooShort        = errors.New("password does not meet the minimum length")
	ErrUserInactive            = errors.New("user is inactive")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCannotModifySelf        = errors.New("cannot change own role or status")
)
