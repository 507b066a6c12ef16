package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/tenant"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, "Validation failed", []validator.ValidationError(validationErrs))
		return
	}

	var leaveErr *leave.RequestValidationError
	if errors.As(err, &leaveErr) {
		BadRequest(w, "Leave request validation failed", leaveErr.Errors)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrMFARequired),
		errors.Is(err, auth.ErrInvalidMFACode),
		errors.Is(err, jwt.ErrWrongTokenType):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountLocked),
		errors.Is(err, auth.ErrAccountInactive),
		errors.Is(err, oauth.ErrEmailNotVerified):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrMFANotEnrolled),
		errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		Error(w, http.StatusServiceUnavailable, err.Error(), nil)

	// Demo
	case errors.Is(err, demo.ErrDemoReadOnly):
		Forbidden(w, "Demo mode is read-only")

	// Tenant and settings
	case errors.Is(err, tenant.ErrTenantNotFound),
		errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, tenant.ErrTenantRequired):
		Unauthorized(w, err.Error())
	case errors.Is(err, tenant.ErrSlugExists):
		Conflict(w, err.Error())
	case errors.Is(err, settings.ErrPasswordTooWeak):
		BadRequest(w, err.Error(), nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidEmailFormat),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrPasswordTooShort):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrUserInactive),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrCannotModifySelf):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this tenant")
	case errors.Is(err, employee.ErrAlreadyTerminated):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrInvalidEmployeeCode):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Branches and departments
	case errors.Is(err, branch.ErrBranchNotFound),
		errors.Is(err, branch.ErrManagerNotFound),
		errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, branch.ErrBranchCodeExists),
		errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound),
		errors.Is(err, leave.ErrPolicyNotFound),
		errors.Is(err, leave.ErrBalanceNotFound),
		errors.Is(err, leave.ErrHolidayNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrLeaveTypeCodeExists),
		errors.Is(err, leave.ErrPolicyOverlap),
		errors.Is(err, leave.ErrHolidayExists),
		errors.Is(err, leave.ErrInvalidStateTransition),
		errors.Is(err, leave.ErrNoApproverAvailable):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrNotAssignedApprover),
		errors.Is(err, leave.ErrCannotDecideOwn),
		errors.Is(err, leave.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound),
		errors.Is(err, payroll.ErrAdvanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists),
		errors.Is(err, payroll.ErrInvalidStatusTransition),
		errors.Is(err, payroll.ErrAdvanceAlreadyDecided),
		errors.Is(err, payroll.ErrAdvanceOutstanding):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrEmployeeHasNoBaseSalary),
		errors.Is(err, payroll.ErrAdvanceExceedsLimit):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Performance domain errors
	case errors.Is(err, performance.ErrReviewNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, performance.ErrReviewExists),
		errors.Is(err, performance.ErrReviewNotEditable),
		errors.Is(err, performance.ErrInvalidStatusTransition):
		Conflict(w, err.Error())
	case errors.Is(err, performance.ErrCannotReviewSelf):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, performance.ErrNotReviewee),
		errors.Is(err, performance.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Dashboard
	case errors.Is(err, dashboard.ErrAdminDashboardForbidden),
		errors.Is(err, dashboard.ErrNoEmployeeProfile):
		Forbidden(w, err.Error())

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
