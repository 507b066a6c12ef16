package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Leave Management
	PermissionLeaveViewOwn     Permission = "leave.view_own"
	PermissionLeaveCreate      Permission = "leave.create"
	PermissionLeaveViewAll     Permission = "leave.view_all"
	PermissionLeaveApprove     Permission = "leave.approve"
	PermissionLeaveManageTypes Permission = "leave.manage_types"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"
	PermissionMasterManage    Permission = "master.manage"

	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollViewAll Permission = "payroll.view_all"
	PermissionPayrollManage  Permission = "payroll.manage"
	PermissionAdvanceCreate  Permission = "advance.create"
	PermissionAdvanceApprove Permission = "advance.approve"

	// Performance
	PermissionPerformanceViewOwn Permission = "performance.view_own"
	PermissionPerformanceManage  Permission = "performance.manage"

	// Tenant Management
	PermissionTenantView     Permission = "tenant.view"
	PermissionTenantManage   Permission = "tenant.manage"
	PermissionSettingsManage Permission = "settings.manage"

	// Reports
	PermissionDashboardViewAdmin Permission = "dashboard.view_admin"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

var selfService = []Permission{
	PermissionViewOwnProfile,
	PermissionLeaveViewOwn,
	PermissionLeaveCreate,
	PermissionPayrollViewOwn,
	PermissionAdvanceCreate,
	PermissionPerformanceViewOwn,
	PermissionTenantView,
}

var approver = []Permission{
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionEmployeeViewAll,
	PermissionPerformanceManage,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: concat(selfService, approver, []Permission{
		PermissionLeaveManageTypes,
		PermissionEmployeeManage,
		PermissionMasterManage,
		PermissionPayrollViewAll,
		PermissionPayrollManage,
		PermissionAdvanceApprove,
		PermissionTenantManage,
		PermissionSettingsManage,
		PermissionDashboardViewAdmin,
		PermissionUserManage,
	}),
	RoleHR: concat(selfService, approver, []Permission{
		PermissionLeaveManageTypes,
		PermissionEmployeeManage,
		PermissionMasterManage,
		PermissionPayrollViewAll,
		PermissionPayrollManage,
		PermissionAdvanceApprove,
		PermissionDashboardViewAdmin,
		PermissionUserManage,
	}),
	RoleOpsManager:    concat(selfService, approver, []Permission{PermissionDashboardViewAdmin}),
	RoleBranchManager: concat(selfService, approver),
	RoleEmployee:      selfService,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

func concat(groups ...[]Permission) []Permission {
	var out []Permission
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
