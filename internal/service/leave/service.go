package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jobs"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/metrics"
)

const dateLayout = "2006-01-02"

// Repositories groups the data access the leave service reads and writes.
type Repositories struct {
	Types     leave.LeaveTypeRepository
	Policies  leave.LeavePolicyRepository
	Balances  leave.LeaveBalanceRepository
	Requests  leave.LeaveRequestRepository
	Holidays  leave.HolidayRepository
	Employees employee.EmployeeRepository
	Branches  branch.BranchRepository
	Users     user.UserRepository
}

type LeaveServiceImpl struct {
	Repositories
	tx         database.Transactor
	calculator *BalanceCalculator
	validator  *RequestValidator
	decisions  *DecisionProcessor
	enqueuer   jobs.Enqueuer
	cache      *cache.Cache
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewLeaveService(repos Repositories, tx database.Transactor, enqueuer jobs.Enqueuer, c *cache.Cache, m *metrics.Metrics) *LeaveServiceImpl {
	return newLeaveService(repos, tx, enqueuer, c, m, time.Now)
}

func newLeaveService(repos Repositories, tx database.Transactor, enqueuer jobs.Enqueuer, c *cache.Cache, m *metrics.Metrics, now func() time.Time) *LeaveServiceImpl {
	if enqueuer == nil {
		enqueuer = jobs.NopEnqueuer{}
	}
	calculator := NewBalanceCalculator(repos.Policies, repos.Balances, repos.Requests, repos.Employees, now)
	return &LeaveServiceImpl{
		Repositories: repos,
		tx:           tx,
		calculator:   calculator,
		validator:    NewRequestValidator(repos.Policies, repos.Employees, repos.Requests, repos.Holidays, calculator, now),
		decisions:    NewDecisionProcessor(repos.Requests, calculator, tx, now),
		enqueuer:     enqueuer,
		cache:        c,
		metrics:      m,
		now:          now,
	}
}

// ========================================
// LEAVE TYPES
// ========================================

func (s *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	types, err := s.Types.List(ctx, id.TenantID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	resp := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, leave.ToLeaveTypeResponse(t))
	}
	return resp, nil
}

func (s *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	exists, err := s.Types.ExistsByCode(ctx, id.TenantID, req.Code)
	if err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to check leave type code: %w", err)
	}
	if exists {
		return leave.LeaveTypeResponse{}, leave.ErrLeaveTypeCodeExists
	}

	created, err := s.Types.Create(ctx, leave.LeaveType{
		TenantID: id.TenantID,
		Name:     req.Name,
		Code:     req.Code,
		Color:    req.Color,
		IsActive: true,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	slog.Info("Leave type created", "tenant_id", id.TenantID, "leave_type_id", created.ID, "code", created.Code)
	s.bumpDashboard(ctx, id.TenantID)
	return leave.ToLeaveTypeResponse(created), nil
}

func (s *LeaveServiceImpl) UpdateType(ctx context.Context, req leave.UpdateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	if err := s.Types.Update(ctx, id.TenantID, req); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	updated, err := s.Types.GetByID(ctx, id.TenantID, req.ID)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	s.bumpDashboard(ctx, id.TenantID)
	return leave.ToLeaveTypeResponse(updated), nil
}

func (s *LeaveServiceImpl) DeactivateType(ctx context.Context, typeID string) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}
	if err := s.Types.Deactivate(ctx, id.TenantID, typeID); err != nil {
		return err
	}
	s.bumpDashboard(ctx, id.TenantID)
	return nil
}

// ========================================
// LEAVE POLICIES
// ========================================

func (s *LeaveServiceImpl) ListPolicies(ctx context.Context, leaveTypeID *string) ([]leave.LeavePolicyResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	policies, err := s.Policies.List(ctx, id.TenantID, leaveTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave policies: %w", err)
	}

	resp := make([]leave.LeavePolicyResponse, 0, len(policies))
	for _, p := range policies {
		resp = append(resp, leave.ToLeavePolicyResponse(p))
	}
	return resp, nil
}

func (s *LeaveServiceImpl) CreatePolicy(ctx context.Context, req leave.CreateLeavePolicyRequest) (leave.LeavePolicyResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return leave.LeavePolicyResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeavePolicyResponse{}, err
	}

	if _, err := s.Types.GetByID(ctx, id.TenantID, req.LeaveTypeID); err != nil {
		return leave.LeavePolicyResponse{}, err
	}

	// Two active policies starting on the same day would make resolution ambiguous.
	existing, err := s.Policies.List(ctx, id.TenantID, &req.LeaveTypeID)
	if err != nil {
		return leave.LeavePolicyResponse{}, fmt.Errorf("failed to list leave policies: %w", err)
	}
	for _, p := range existing {
		if p.IsActive && p.EffectiveDate.Equal(req.Effective) {
			return leave.LeavePolicyResponse{}, leave.ErrPolicyOverlap
		}
	}

	created, err := s.Policies.Create(ctx, leave.LeavePolicy{
		TenantID:             id.TenantID,
		LeaveTypeID:          req.LeaveTypeID,
		MaxDaysPerYear:       req.MaxDaysPerYear,
		AccrualRate:          req.AccrualRate,
		MaxCarryForward:      req.MaxCarryForward,
		ProbationPeriodDays:  req.ProbationPeriodDays,
		MinDaysNotice:        req.MinDaysNotice,
		MaxDaysPerRequest:    req.MaxDaysPerRequest,
		AllowNegativeBalance: req.AllowNegativeBalance,
		IsActive:             true,
		EffectiveDate:        req.Effective,
		ExpiryDate:           req.Expiry,
	})
	if err != nil {
		return leave.LeavePolicyResponse{}, err
	}

	slog.Info("Leave policy created", "tenant_id", id.TenantID, "policy_id", created.ID, "leave_type_id", created.LeaveTypeID)
	return leave.ToLeavePolicyResponse(created), nil
}

func (s *LeaveServiceImpl) UpdatePolicy(ctx context.Context, req leave.UpdateLeavePolicyRequest) (leave.LeavePolicyResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return leave.LeavePolicyResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeavePolicyResponse{}, err
	}

	policy, err := s.Policies.GetByID(ctx, id.TenantID, req.ID)
	if err != nil {
		return leave.LeavePolicyResponse{}, err
	}
	req.Apply(&policy)

	if policy.ExpiryDate != nil && policy.ExpiryDate.Before(policy.EffectiveDate) {
		return leave.LeavePolicyResponse{}, &leave.RequestValidationError{Errors: []string{"expiryDate must not be before effectiveDate"}}
	}

	if err := s.Policies.Update(ctx, policy); err != nil {
		return leave.LeavePolicyResponse{}, err
	}
	return leave.ToLeavePolicyResponse(policy), nil
}

// ========================================
// LEAVE REQUESTS
// ========================================

func (s *LeaveServiceImpl) SubmitRequest(ctx context.Context, req leave.SubmitLeaveRequestRequest) (leave.SubmitLeaveResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return leave.SubmitLeaveResponse{}, err
	}

	if req.EmployeeID == "" && id.EmployeeID != nil {
		req.EmployeeID = *id.EmployeeID
	}
	if err := req.Validate(); err != nil {
		return leave.SubmitLeaveResponse{}, err
	}
	if err := s.authorizeEmployee(id, req.EmployeeID); err != nil {
		return leave.SubmitLeaveResponse{}, err
	}

	var (
		created  leave.LeaveRequest
		balance  leave.LeaveBalance
		approver Approver
		emp      employee.Employee
	)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Employee lock first: the overlap check spans every leave type.
		if err := s.Requests.LockEmployee(ctx, req.EmployeeID); err != nil {
			return err
		}
		if err := s.Balances.Lock(ctx, req.EmployeeID, req.LeaveTypeID, req.Start.Year()); err != nil {
			return err
		}

		result, err := s.validator.Validate(ctx, id.TenantID, req.EmployeeID, req.LeaveTypeID, req.Start, req.End)
		if err != nil {
			return err
		}
		if !result.IsValid {
			return &leave.RequestValidationError{Errors: result.Errors}
		}

		emp, err = s.Employees.GetByID(ctx, id.TenantID, req.EmployeeID)
		if err != nil {
			return err
		}
		approver, err = s.routeApprover(ctx, emp)
		if err != nil {
			return err
		}

		role := approver.Role
		created, err = s.Requests.Create(ctx, leave.LeaveRequest{
			TenantID:     id.TenantID,
			EmployeeID:   req.EmployeeID,
			LeaveTypeID:  req.LeaveTypeID,
			StartDate:    dateOnly(req.Start),
			EndDate:      dateOnly(req.End),
			TotalDays:    result.TotalDays,
			Reason:       req.Reason,
			Status:       leave.LeaveRequestStatusPending,
			ApproverID:   &approver.UserID,
			ApproverRole: &role,
		})
		if err != nil {
			return err
		}

		balance, err = s.calculator.Recalculate(ctx, id.TenantID, req.EmployeeID, req.LeaveTypeID, created.Year())
		return err
	})
	if err != nil {
		var verr *leave.RequestValidationError
		if errors.As(err, &verr) {
			s.metrics.LeaveEvent("rejected_validation")
		}
		return leave.SubmitLeaveResponse{}, err
	}

	created.EmployeeName = &emp.FullName
	leaveTypeName := s.leaveTypeName(ctx, id.TenantID, created.LeaveTypeID)
	created.LeaveTypeName = &leaveTypeName

	slog.Info("Leave request submitted",
		"tenant_id", id.TenantID,
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"approver_id", approver.UserID,
		"approver_role", approver.Role,
		"total_days", created.TotalDays,
	)
	s.metrics.LeaveEvent("submitted")
	s.notifyApprover(ctx, id.TenantID, approver, emp, created, leaveTypeName)
	s.bumpDashboard(ctx, id.TenantID)

	return leave.SubmitLeaveResponse{
		Request: leave.ToLeaveRequestResponse(created),
		Balance: leave.ToLeaveBalanceResponse(balance),
	}, nil
}

func (s *LeaveServiceImpl) routeApprover(ctx context.Context, emp employee.Employee) (Approver, error) {
	in := RoutingInput{Employee: emp}

	if emp.BranchID != nil {
		b, err := s.Branches.GetByID(ctx, emp.TenantID, *emp.BranchID)
		switch {
		case err == nil:
			in.Branch = &b
		case errors.Is(err, branch.ErrBranchNotFound):
		default:
			return Approver{}, fmt.Errorf("failed to get branch: %w", err)
		}
	}

	hr, err := s.Users.FindFirstByRole(ctx, emp.TenantID, user.RoleHR)
	switch {
	case err == nil:
		in.HRUser = &hr
	case errors.Is(err, user.ErrUserNotFound):
	default:
		return Approver{}, fmt.Errorf("failed to find hr user: %w", err)
	}

	return RouteApprover(in)
}

func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	switch {
	case !id.Can(user.PermissionLeaveViewAll):
		if id.EmployeeID == nil {
			return leave.ListLeaveRequestResponse{}, leave.ErrUnauthorizedAccess
		}
		filter.EmployeeID = id.EmployeeID
	case id.Role == user.RoleBranchManager:
		isOwn := id.EmployeeID != nil && filter.EmployeeID != nil && *filter.EmployeeID == *id.EmployeeID
		if !isOwn {
			filter.ApproverID = &id.UserID
		}
	}

	requests, total, err := s.Requests.List(ctx, id.TenantID, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		resp = append(resp, leave.ToLeaveRequestResponse(r))
	}
	return leave.ListLeaveRequestResponse{
		Requests:   resp,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *LeaveServiceImpl) GetRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.Requests.GetByID(ctx, id.TenantID, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !id.Can(user.PermissionLeaveViewAll) && !ownsEmployee(id, request.EmployeeID) {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
	}
	return leave.ToLeaveRequestResponse(request), nil
}

func (s *LeaveServiceImpl) DecideRequest(ctx context.Context, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.Requests.GetByID(ctx, id.TenantID, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if ownsEmployee(id, request.EmployeeID) {
		return leave.LeaveRequestResponse{}, leave.ErrCannotDecideOwn
	}
	if id.Role != user.RoleHR && id.Role != user.RoleAdmin {
		if request.ApproverID == nil || *request.ApproverID != id.UserID {
			return leave.LeaveRequestResponse{}, leave.ErrNotAssignedApprover
		}
	}

	decided, _, err := s.decisions.Decide(ctx, id.TenantID, req.RequestID, leave.Decision(req.Decision), id.UserID, req.Reason)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request decided",
		"tenant_id", id.TenantID,
		"request_id", decided.ID,
		"decision", req.Decision,
		"decided_by", id.UserID,
	)
	s.metrics.LeaveEvent(strings.ToLower(string(decided.Status)))
	s.notifyEmployee(ctx, id.TenantID, decided)
	s.bumpDashboard(ctx, id.TenantID)

	return leave.ToLeaveRequestResponse(decided), nil
}

// ========================================
// BALANCES
// ========================================

func (s *LeaveServiceImpl) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEmployee(id, employeeID); err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.now().Year()
	}

	if _, err := s.Employees.GetByID(ctx, id.TenantID, employeeID); err != nil {
		return nil, err
	}

	balances, err := s.Balances.ListByEmployee(ctx, id.TenantID, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	if len(balances) == 0 {
		balances, err = s.previewBalances(ctx, id.TenantID, employeeID, year)
		if err != nil {
			return nil, err
		}
	}

	resp := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, leave.ToLeaveBalanceResponse(b))
	}
	return resp, nil
}

// previewBalances computes balances for a year that has no persisted rows yet.
func (s *LeaveServiceImpl) previewBalances(ctx context.Context, tenantID, employeeID string, year int) ([]leave.LeaveBalance, error) {
	types, err := s.Types.List(ctx, tenantID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	balances := make([]leave.LeaveBalance, 0, len(types))
	for _, t := range types {
		b, err := s.calculator.Calculate(ctx, tenantID, employeeID, t.ID, year)
		if errors.Is(err, leave.ErrPolicyNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		name, code := t.Name, t.Code
		b.LeaveTypeName, b.LeaveTypeCode = &name, &code
		balances = append(balances, b)
	}
	return balances, nil
}

// InitializeBalances persists balances for every active leave type that has an effective policy.
func (s *LeaveServiceImpl) InitializeBalances(ctx context.Context, tenantID, employeeID string, year int) error {
	_, err := s.refreshEmployee(ctx, tenantID, employeeID, year)
	return err
}

// RefreshTenantBalances recomputes balances of all non-terminated employees and returns the rows written.
func (s *LeaveServiceImpl) RefreshTenantBalances(ctx context.Context, tenantID string, year int) (int, error) {
	employees, err := s.Employees.ListActive(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	total := 0
	for _, emp := range employees {
		n, err := s.refreshEmployee(ctx, tenantID, emp.ID, year)
		if err != nil {
			return total, fmt.Errorf("refresh balances of employee %s: %w", emp.ID, err)
		}
		total += n
	}

	s.bumpDashboard(ctx, tenantID)
	return total, nil
}

func (s *LeaveServiceImpl) refreshEmployee(ctx context.Context, tenantID, employeeID string, year int) (int, error) {
	types, err := s.Types.List(ctx, tenantID, true)
	if err != nil {
		return 0, fmt.Errorf("failed to list leave types: %w", err)
	}

	written := 0
	for _, t := range types {
		err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := s.calculator.Recalculate(ctx, tenantID, employeeID, t.ID, year)
			return err
		})
		if errors.Is(err, leave.ErrPolicyNotFound) {
			continue
		}
		if err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// ========================================
// HOLIDAYS
// ========================================

func (s *LeaveServiceImpl) ListHolidays(ctx context.Context, year int) ([]leave.HolidayResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.now().Year()
	}

	holidays, err := s.Holidays.ListByYear(ctx, id.TenantID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	resp := make([]leave.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, leave.ToHolidayResponse(h))
	}
	return resp, nil
}

func (s *LeaveServiceImpl) CreateHoliday(ctx context.Context, req leave.CreateHolidayRequest) (leave.HolidayResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return leave.HolidayResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.HolidayResponse{}, err
	}

	exists, err := s.Holidays.ExistsOnDate(ctx, id.TenantID, req.Parsed)
	if err != nil {
		return leave.HolidayResponse{}, fmt.Errorf("failed to check holiday date: %w", err)
	}
	if exists {
		return leave.HolidayResponse{}, leave.ErrHolidayExists
	}

	created, err := s.Holidays.Create(ctx, leave.Holiday{
		TenantID: id.TenantID,
		Name:     req.Name,
		Date:     req.Parsed,
		IsActive: true,
	})
	if err != nil {
		return leave.HolidayResponse{}, err
	}
	return leave.ToHolidayResponse(created), nil
}

func (s *LeaveServiceImpl) DeleteHoliday(ctx context.Context, holidayID string) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}
	return s.Holidays.Delete(ctx, id.TenantID, holidayID)
}

// ========================================
// HELPERS
// ========================================

// authorizeEmployee lets self-service callers act only on their own employee record.
func (s *LeaveServiceImpl) authorizeEmployee(id auth.Identity, employeeID string) error {
	if id.Can(user.PermissionLeaveViewAll) || ownsEmployee(id, employeeID) {
		return nil
	}
	return leave.ErrUnauthorizedAccess
}

func ownsEmployee(id auth.Identity, employeeID string) bool {
	return id.EmployeeID != nil && *id.EmployeeID == employeeID
}

func (s *LeaveServiceImpl) leaveTypeName(ctx context.Context, tenantID, leaveTypeID string) string {
	t, err := s.Types.GetByID(ctx, tenantID, leaveTypeID)
	if err != nil {
		return ""
	}
	return t.Name
}

func (s *LeaveServiceImpl) notifyApprover(ctx context.Context, tenantID string, approver Approver, emp employee.Employee, req leave.LeaveRequest, leaveTypeName string) {
	u, err := s.Users.GetByID(ctx, tenantID, approver.UserID)
	if err != nil {
		slog.Warn("Approver lookup failed, notification skipped", "request_id", req.ID, "approver_id", approver.UserID, "error", err)
		return
	}

	s.enqueue(ctx, email.Message{
		To:       u.Email,
		Subject:  fmt.Sprintf("Leave request from %s", emp.FullName),
		Template: email.TemplateLeaveSubmitted,
		Data: map[string]any{
			"EmployeeName": emp.FullName,
			"LeaveType":    leaveTypeName,
			"StartDate":    req.StartDate.Format(dateLayout),
			"EndDate":      req.EndDate.Format(dateLayout),
			"TotalDays":    req.TotalDays,
			"Reason":       req.Reason,
			"ApproverRole": string(approver.Role),
		},
	})
}

func (s *LeaveServiceImpl) notifyEmployee(ctx context.Context, tenantID string, req leave.LeaveRequest) {
	emp, err := s.Employees.GetByID(ctx, tenantID, req.EmployeeID)
	if err != nil {
		slog.Warn("Employee lookup failed, notification skipped", "request_id", req.ID, "error", err)
		return
	}

	reason := ""
	if req.RejectionReason != nil {
		reason = *req.RejectionReason
	}
	leaveTypeName := s.leaveTypeName(ctx, tenantID, req.LeaveTypeID)

	s.enqueue(ctx, email.Message{
		To:       emp.Email,
		Subject:  fmt.Sprintf("Your leave request was %s", req.Status),
		Template: email.TemplateLeaveDecided,
		Data: map[string]any{
			"Status":    string(req.Status),
			"LeaveType": leaveTypeName,
			"StartDate": req.StartDate.Format(dateLayout),
			"EndDate":   req.EndDate.Format(dateLayout),
			"TotalDays": req.TotalDays,
			"Reason":    reason,
		},
	})
}

func (s *LeaveServiceImpl) enqueue(ctx context.Context, msg email.Message) {
	if err := s.enqueuer.EnqueueEmail(ctx, msg); err != nil {
		slog.Error("Failed to enqueue notification email", "template", msg.Template, "to", msg.To, "error", err)
	}
}

func (s *LeaveServiceImpl) bumpDashboard(ctx context.Context, tenantID string) {
	if err := s.cache.Bump(ctx, tenantID); err != nil {
		slog.Warn("Failed to invalidate dashboard cache", "tenant_id", tenantID, "error", err)
	}
}
