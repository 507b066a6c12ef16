package leave

import (
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

// RoutingInput is everything RouteApprover needs; the caller loads it.
type RoutingInput struct {
	Employee employee.Employee
	Branch   *branch.Branch // nil when the employee has no branch
	HRUser   *user.User     // first HR user of the tenant, nil when none
}

type Approver struct {
	UserID string
	Role   leave.ApproverRole
}

func RouteApprover(in RoutingInput) (Approver, error) {
	if isOperationsManager(in.Employee) {
		return hrApprover(in.HRUser)
	}

	if in.Branch != nil && in.Branch.HasManager() && !isSelf(in.Employee, *in.Branch.ManagerUserID) {
		return Approver{UserID: *in.Branch.ManagerUserID, Role: leave.ApproverRoleBranchManager}, nil
	}

	return hrApprover(in.HRUser)
}

func isOperationsManager(emp employee.Employee) bool {
	if emp.UserRole != nil && user.Role(*emp.UserRole) == user.RoleOpsManager {
		return true
	}
	return emp.Position == employee.PositionOperationsManager
}

// isSelf keeps a branch manager from being routed their own request.
func isSelf(emp employee.Employee, userID string) bool {
	return emp.UserID != nil && *emp.UserID == userID
}

func hrApprover(hr *user.User) (Approver, error) {
	if hr == nil {
		return Approver{}, leave.ErrNoApproverAvailable
	}
	return Approver{UserID: hr.ID, Role: leave.ApproverRoleHR}, nil
}
