package branch

import "time"

type Branch struct {
	ID            string
	TenantID      string
	Name          string
	Code          string
	Address       *string
	ManagerUserID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasManager reports whether leave requests can be routed to a branch manager.
func (b Branch) HasManager() bool {
	return b.ManagerUserID != nil && *b.ManagerUserID != ""
}
