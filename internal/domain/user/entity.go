package user

import "time"

type Role string

const (
	RoleAdmin         Role = "ADMIN"          // Tenant administrator - full access
	RoleHR            Role = "HR"             // Human resources, default leave approver
	RoleOpsManager    Role = "OPS_MANAGER"    // Operations manager, routed to HR for own leave
	RoleBranchManager Role = "BRANCH_MANAGER" // Approves leave for their branch
	RoleEmployee      Role = "EMPLOYEE"       // Regular employee
)

// AllRoles lists every assignable role.
var AllRoles = []Role{RoleAdmin, RoleHR, RoleOpsManager, RoleBranchManager, RoleEmployee}

func (r Role) IsValid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID                  string
	TenantID            string
	Email               string
	PasswordHash        *string
	Role                Role
	IsActive            bool
	IsDemo              bool
	MFAEnabled          bool
	MFASecret           *string
	FailedLoginAttempts int
	LastLoginAt         *time.Time
	OAuthProvider       *string
	OAuthProviderID     *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO / Join
	EmployeeID *string
}

// IsHR checks if user belongs to HR or is an admin
func (u *User) IsHR() bool {
	return u.Role == RoleHR || u.Role == RoleAdmin
}

// CanDecideAny reports whether the user may decide requests routed to someone else.
func (u *User) CanDecideAny() bool {
	return u.IsHR()
}
