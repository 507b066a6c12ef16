package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx             database.Transactor
	employeeRepo   employee.EmployeeRepository
	userRepo       user.UserRepository
	branchRepo     branch.BranchRepository
	departmentRepo department.DepartmentRepository
	balances       employee.BalanceInitializer
	cache          *cache.Cache
	now            func() time.Time
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	branchRepo branch.BranchRepository,
	departmentRepo department.DepartmentRepository,
	balances employee.BalanceInitializer,
	c *cache.Cache,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		userRepo:       userRepo,
		branchRepo:     branchRepo,
		departmentRepo: departmentRepo,
		balances:       balances,
		cache:          c,
		now:            time.Now,
	}
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if !id.Can(user.PermissionEmployeeViewAll) {
		return employee.ListEmployeeResponse{}, employee.ErrUnauthorized
	}
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, id.TenantID, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.ToResponse(e))
	}
	return employee.ListEmployeeResponse{
		Employees:  resp,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	isSelf := id.EmployeeID != nil && *id.EmployeeID == employeeID
	if !isSelf && !id.Can(user.PermissionEmployeeViewAll) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	emp, err := s.employeeRepo.GetByID(ctx, id.TenantID, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	hireDate, _ := time.Parse("2006-01-02", req.HireDate)

	exists, err := s.employeeRepo.ExistsByCodeOrEmail(ctx, id.TenantID, req.EmployeeCode, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee uniqueness: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	if err := s.checkAssignments(ctx, id.TenantID, req.DepartmentID, req.BranchID); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.UserID != nil {
		if _, err := s.userRepo.GetByID(ctx, id.TenantID, *req.UserID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	var created employee.Employee
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err = s.employeeRepo.Create(ctx, employee.Employee{
			TenantID:         id.TenantID,
			UserID:           req.UserID,
			EmployeeCode:     req.EmployeeCode,
			FullName:         strings.TrimSpace(req.FullName),
			Email:            strings.ToLower(strings.TrimSpace(req.Email)),
			Position:         req.Position,
			DepartmentID:     req.DepartmentID,
			BranchID:         req.BranchID,
			HireDate:         hireDate,
			EmploymentStatus: employee.EmploymentStatusActive,
			BaseSalary:       req.BaseSalary,
		})
		if err != nil {
			return err
		}
		return s.balances.InitializeBalances(ctx, id.TenantID, created.ID, s.now().Year())
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "tenant_id", id.TenantID, "employee_id", created.ID, "employee_code", created.EmployeeCode)
	s.bumpDashboard(ctx, id.TenantID)

	// Re-read for department and branch names.
	full, err := s.employeeRepo.GetByID(ctx, id.TenantID, created.ID)
	if err != nil {
		return employee.ToResponse(created), nil
	}
	return employee.ToResponse(full), nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.checkAssignments(ctx, id.TenantID, nonEmpty(req.DepartmentID), nonEmpty(req.BranchID)); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &lowered
	}

	if err := s.employeeRepo.Update(ctx, id.TenantID, req.ID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, id.TenantID, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	s.bumpDashboard(ctx, id.TenantID)
	return employee.ToResponse(updated), nil
}

func (s *EmployeeServiceImpl) TerminateEmployee(ctx context.Context, employeeID string) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id.TenantID, employeeID)
	if err != nil {
		return err
	}
	if emp.EmploymentStatus == employee.EmploymentStatusTerminated {
		return employee.ErrAlreadyTerminated
	}

	if err := s.employeeRepo.UpdateStatus(ctx, id.TenantID, employeeID, employee.EmploymentStatusTerminated); err != nil {
		return err
	}

	slog.Info("Employee terminated", "tenant_id", id.TenantID, "employee_id", employeeID, "by", id.UserID)
	s.bumpDashboard(ctx, id.TenantID)
	return nil
}

func (s *EmployeeServiceImpl) checkAssignments(ctx context.Context, tenantID string, departmentID, branchID *string) error {
	if departmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, tenantID, *departmentID); err != nil {
			return err
		}
	}
	if branchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, tenantID, *branchID); err != nil {
			return err
		}
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func (s *EmployeeServiceImpl) bumpDashboard(ctx context.Context, tenantID string) {
	if err := s.cache.Bump(ctx, tenantID); err != nil {
		slog.Warn("Failed to invalidate dashboard cache", "tenant_id", tenantID, "error", err)
	}
}
