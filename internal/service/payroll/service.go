package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/tenant"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jobs"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/pdf"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx           database.Transactor
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	tenantRepo   tenant.TenantRepository
	enqueuer     jobs.Enqueuer
	cache        *cache.Cache
	taxRate      decimal.Decimal
	now          func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	tenantRepo tenant.TenantRepository,
	enqueuer jobs.Enqueuer,
	c *cache.Cache,
	taxRate decimal.Decimal,
) *PayrollServiceImpl {
	if enqueuer == nil {
		enqueuer = jobs.NopEnqueuer{}
	}
	return &PayrollServiceImpl{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		tenantRepo:   tenantRepo,
		enqueuer:     enqueuer,
		cache:        c,
		taxRate:      taxRate,
		now:          time.Now,
	}
}

// ========== PAYROLL RECORDS ==========

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	resp := payroll.ListPayrollResponse{Records: []payroll.PayrollRecordResponse{}, Page: filter.Page, Limit: filter.Limit}
	if !id.Can(user.PermissionPayrollViewAll) {
		if id.EmployeeID == nil {
			return resp, nil
		}
		filter.EmployeeID = id.EmployeeID
	}

	records, total, err := s.payrollRepo.ListRecords(ctx, id.TenantID, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	for _, r := range records {
		resp.Records = append(resp.Records, payroll.ToRecordResponse(r))
	}
	resp.TotalCount = total
	return resp, nil
}

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, recordID string) (payroll.PayrollRecordResponse, error) {
	_, record, err := s.authorizedRecord(ctx, recordID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return payroll.ToRecordResponse(record), nil
}

// CreateRecord computes a DRAFT record for the period and consumes approved salary advances.
func (s *PayrollServiceImpl) CreateRecord(ctx context.Context, req payroll.CreatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var created payroll.PayrollRecord
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, id.TenantID, req.EmployeeID)
		if err != nil {
			return err
		}
		if !emp.BaseSalary.IsPositive() {
			return payroll.ErrEmployeeHasNoBaseSalary
		}

		exists, err := s.payrollRepo.ExistsForPeriod(ctx, id.TenantID, emp.ID, req.PeriodMonth, req.PeriodYear)
		if err != nil {
			return fmt.Errorf("failed to check payroll period: %w", err)
		}
		if exists {
			return payroll.ErrPayrollRecordAlreadyExists
		}

		record := payroll.PayrollRecord{
			TenantID:        id.TenantID,
			EmployeeID:      emp.ID,
			PeriodMonth:     req.PeriodMonth,
			PeriodYear:      req.PeriodYear,
			BaseSalary:      emp.BaseSalary,
			TotalAllowances: req.TotalAllowances,
			TotalDeductions: req.TotalDeductions,
			Status:          payroll.PayrollStatusDraft,
		}

		advances, err := s.payrollRepo.ListApprovedAdvances(ctx, id.TenantID, emp.ID)
		if err != nil {
			return fmt.Errorf("failed to list approved advances: %w", err)
		}
		repaid := applyAdvances(&record, advances)
		computeNetPay(&record, s.taxRate)

		created, err = s.payrollRepo.CreateRecord(ctx, record)
		if err != nil {
			return err
		}
		created.EmployeeName = &emp.FullName
		created.EmployeeCode = &emp.EmployeeCode

		return s.payrollRepo.MarkAdvancesRepaid(ctx, id.TenantID, repaid, created.ID)
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("Payroll record created",
		"tenant_id", id.TenantID,
		"record_id", created.ID,
		"employee_id", created.EmployeeID,
		"period", period(created),
		"advance_deduction", created.AdvanceDeduction.String(),
	)
	s.bumpDashboard(ctx, id.TenantID)
	return payroll.ToRecordResponse(created), nil
}

func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, req payroll.UpdatePayrollStatusRequest) (payroll.PayrollRecordResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetRecordByID(ctx, id.TenantID, req.ID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	next := payroll.PayrollStatus(req.Status)
	if !record.Status.CanTransitionTo(next) {
		return payroll.PayrollRecordResponse{}, payroll.ErrInvalidStatusTransition
	}

	now := s.now()
	record.Status = next
	switch next {
	case payroll.PayrollStatusProcessed:
		record.ProcessedAt = &now
	case payroll.PayrollStatusPaid:
		record.PaidAt = &now
	}

	if err := s.payrollRepo.UpdateRecordStatus(ctx, record); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("Payroll record status changed", "tenant_id", id.TenantID, "record_id", record.ID, "status", record.Status)
	if next == payroll.PayrollStatusProcessed {
		s.notifyPayslip(ctx, record)
	}
	s.bumpDashboard(ctx, id.TenantID)
	return payroll.ToRecordResponse(record), nil
}

// Payslip renders the record as PDF and returns the bytes with a download file name.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, recordID string) ([]byte, string, error) {
	id, record, err := s.authorizedRecord(ctx, recordID)
	if err != nil {
		return nil, "", err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id.TenantID, record.EmployeeID)
	if err != nil {
		return nil, "", err
	}
	t, err := s.tenantRepo.GetByID(ctx, id.TenantID)
	if err != nil {
		return nil, "", err
	}

	out, err := pdf.RenderPayslip(pdf.Payslip{
		CompanyName:      t.Name,
		EmployeeName:     emp.FullName,
		EmployeeCode:     emp.EmployeeCode,
		Position:         emp.Position,
		Period:           period(record),
		Status:           string(record.Status),
		BaseSalary:       record.BaseSalary,
		Allowances:       record.TotalAllowances,
		Deductions:       record.TotalDeductions,
		AdvanceDeduction: record.AdvanceDeduction,
		Tax:              record.Tax,
		NetPay:           record.NetPay,
	})
	if err != nil {
		return nil, "", err
	}

	return out, fmt.Sprintf("payslip-%s-%s.pdf", emp.EmployeeCode, period(record)), nil
}

func (s *PayrollServiceImpl) authorizedRecord(ctx context.Context, recordID string) (auth.Identity, payroll.PayrollRecord, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return auth.Identity{}, payroll.PayrollRecord{}, err
	}

	record, err := s.payrollRepo.GetRecordByID(ctx, id.TenantID, recordID)
	if err != nil {
		return auth.Identity{}, payroll.PayrollRecord{}, err
	}
	if !id.Can(user.PermissionPayrollViewAll) && !ownsEmployee(id, record.EmployeeID) {
		return auth.Identity{}, payroll.PayrollRecord{}, payroll.ErrUnauthorizedAccess
	}
	return id, record, nil
}

// ========== SALARY ADVANCES ==========

func (s *PayrollServiceImpl) RequestAdvance(ctx context.Context, req payroll.CreateAdvanceRequest) (payroll.SalaryAdvanceResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return payroll.SalaryAdvanceResponse{}, err
	}
	if req.EmployeeID == "" && id.EmployeeID != nil {
		req.EmployeeID = *id.EmployeeID
	}
	if err := req.Validate(); err != nil {
		return payroll.SalaryAdvanceResponse{}, err
	}
	if !ownsEmployee(id, req.EmployeeID) && !id.Can(user.PermissionPayrollManage) {
		return payroll.SalaryAdvanceResponse{}, payroll.ErrUnauthorizedAccess
	}

	emp, err := s.employeeRepo.GetByID(ctx, id.TenantID, req.EmployeeID)
	if err != nil {
		return payroll.SalaryAdvanceResponse{}, err
	}
	if !emp.BaseSalary.IsPositive() {
		return payroll.SalaryAdvanceResponse{}, payroll.ErrEmployeeHasNoBaseSalary
	}
	if !withinAdvanceLimit(req.Amount, emp.BaseSalary) {
		return payroll.SalaryAdvanceResponse{}, payroll.ErrAdvanceExceedsLimit
	}

	outstanding, err := s.payrollRepo.HasOutstandingAdvance(ctx, id.TenantID, emp.ID)
	if err != nil {
		return payroll.SalaryAdvanceResponse{}, fmt.Errorf("failed to check outstanding advances: %w", err)
	}
	if outstanding {
		return payroll.SalaryAdvanceResponse{}, payroll.ErrAdvanceOutstanding
	}

	created, err := s.payrollRepo.CreateAdvance(ctx, payroll.SalaryAdvance{
		TenantID:   id.TenantID,
		EmployeeID: emp.ID,
		Amount:     req.Amount,
		Reason:     req.Reason,
		Status:     payroll.AdvanceStatusPending,
	})
	if err != nil {
		return payroll.SalaryAdvanceResponse{}, err
	}
	created.EmployeeName = &emp.FullName

	slog.Info("Salary advance requested", "tenant_id", id.TenantID, "advance_id", created.ID, "employee_id", emp.ID, "amount", created.Amount.String())
	return payroll.ToAdvanceResponse(created), nil
}

func (s *PayrollServiceImpl) ListAdvances(ctx context.Context, filter payroll.AdvanceFilter) (payroll.ListAdvanceResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return payroll.ListAdvanceResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return payroll.ListAdvanceResponse{}, err
	}

	resp := payroll.ListAdvanceResponse{Advances: []payroll.SalaryAdvanceResponse{}, Page: filter.Page, Limit: filter.Limit}
	if !id.Can(user.PermissionAdvanceApprove) {
		if id.EmployeeID == nil {
			return resp, nil
		}
		filter.EmployeeID = id.EmployeeID
	}

	advances, total, err := s.payrollRepo.ListAdvances(ctx, id.TenantID, filter)
	if err != nil {
		return payroll.ListAdvanceResponse{}, fmt.Errorf("failed to list salary advances: %w", err)
	}
	for _, a := range advances {
		resp.Advances = append(resp.Advances, payroll.ToAdvanceResponse(a))
	}
	resp.TotalCount = total
	return resp, nil
}

func (s *PayrollServiceImpl) DecideAdvance(ctx context.Context, req payroll.DecideAdvanceRequest) (payroll.SalaryAdvanceResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return payroll.SalaryAdvanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.SalaryAdvanceResponse{}, err
	}

	advance, err := s.payrollRepo.GetAdvanceByID(ctx, id.TenantID, req.ID)
	if err != nil {
		return payroll.SalaryAdvanceResponse{}, err
	}
	if advance.Status != payroll.AdvanceStatusPending {
		return payroll.SalaryAdvanceResponse{}, payroll.ErrAdvanceAlreadyDecided
	}

	now := s.now()
	advance.Status = payroll.AdvanceStatus(req.Decision)
	advance.DecidedBy = &id.UserID
	advance.DecidedAt = &now

	if err := s.payrollRepo.UpdateAdvanceDecision(ctx, advance); err != nil {
		return payroll.SalaryAdvanceResponse{}, err
	}

	slog.Info("Salary advance decided", "tenant_id", id.TenantID, "advance_id", advance.ID, "status", advance.Status, "by", id.UserID)
	s.bumpDashboard(ctx, id.TenantID)
	return payroll.ToAdvanceResponse(advance), nil
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) notifyPayslip(ctx context.Context, record payroll.PayrollRecord) {
	emp, err := s.employeeRepo.GetByID(ctx, record.TenantID, record.EmployeeID)
	if err != nil {
		slog.Warn("Employee lookup failed, payslip notification skipped", "record_id", record.ID, "error", err)
		return
	}

	msg := email.Message{
		To:       emp.Email,
		Subject:  "Your payslip for " + period(record) + " is ready",
		Template: email.TemplatePayslipReady,
		Data: map[string]any{
			"Period": period(record),
			"NetPay": record.NetPay.StringFixed(2),
		},
	}
	if err := s.enqueuer.EnqueueEmail(ctx, msg); err != nil {
		slog.Error("Failed to enqueue payslip email", "record_id", record.ID, "error", err)
	}
}

func (s *PayrollServiceImpl) bumpDashboard(ctx context.Context, tenantID string) {
	if err := s.cache.Bump(ctx, tenantID); err != nil {
		slog.Warn("Failed to invalidate dashboard cache", "tenant_id", tenantID, "error", err)
	}
}

func ownsEmployee(id auth.Identity, employeeID string) bool {
	return id.EmployeeID != nil && *id.EmployeeID == employeeID
}

func period(r payroll.PayrollRecord) string {
	return fmt.Sprintf("%04d-%02d", r.PeriodYear, r.PeriodMonth)
}
