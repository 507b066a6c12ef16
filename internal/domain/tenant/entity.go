package tenant

import "time"

type Tenant struct {
	ID        string
	Name      string
	Slug      string
	IsDemo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
