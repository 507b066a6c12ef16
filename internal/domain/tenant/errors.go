package tenant

import "errors"

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrTenantRequired = errors.New("tenant context is required")
)

var ErrSlugExists = errors.New("tenant slug already taken")
