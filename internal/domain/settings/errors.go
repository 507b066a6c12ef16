package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("security settings not found")
	ErrPasswordTooWeak  = errors.New("password does not satisfy the tenant password policy")
)
