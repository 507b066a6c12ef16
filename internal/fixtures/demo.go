package fixtures

import (
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
)

// Demo identity. None of these rows exist in the database.
const (
	DemoTenantID   = "018f2a00-0000-7000-8000-000000000001"
	DemoUserID     = "018f2a00-0000-7000-8000-000000000002"
	DemoEmployeeID = "018f2a00-0000-7000-8000-000000000003"
	DemoEmail      = "demo@hrms.local"
	DemoTenantName = "Nusantara Demo Corp"
)

// DemoClaims is the access token identity issued by the demo login.
func DemoClaims() jwt.AccessClaims {
	employeeID := DemoEmployeeID
	return jwt.AccessClaims{
		UserID:     DemoUserID,
		Email:      DemoEmail,
		TenantID:   DemoTenantID,
		EmployeeID: &employeeID,
		Role:       user.RoleAdmin,
		IsDemo:     true,
	}
}
