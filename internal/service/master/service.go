package master

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cache"
)

type MasterServiceImpl struct {
	branchRepo     branch.BranchRepository
	departmentRepo department.DepartmentRepository
	userRepo       user.UserRepository
	cache          *cache.Cache
}

func NewMasterService(
	branchRepo branch.BranchRepository,
	departmentRepo department.DepartmentRepository,
	userRepo user.UserRepository,
	c *cache.Cache,
) *MasterServiceImpl {
	return &MasterServiceImpl{
		branchRepo:     branchRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		cache:          c,
	}
}

// ========================================
// BRANCH
// ========================================

func (s *MasterServiceImpl) ListBranches(ctx context.Context) ([]branch.BranchResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	branches, err := s.branchRepo.List(ctx, id.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	resp := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		resp = append(resp, branch.ToResponse(b))
	}
	return resp, nil
}

func (s *MasterServiceImpl) GetBranch(ctx context.Context, branchID string) (branch.BranchResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	b, err := s.branchRepo.GetByID(ctx, id.TenantID, branchID)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToResponse(b), nil
}

func (s *MasterServiceImpl) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	exists, err := s.branchRepo.ExistsByCode(ctx, id.TenantID, req.Code)
	if err != nil {
		return branch.BranchResponse{}, fmt.Errorf("failed to check branch code: %w", err)
	}
	if exists {
		return branch.BranchResponse{}, branch.ErrBranchCodeExists
	}
	if err := s.checkManager(ctx, id.TenantID, req.ManagerUserID); err != nil {
		return branch.BranchResponse{}, err
	}

	created, err := s.branchRepo.Create(ctx, branch.Branch{
		TenantID:      id.TenantID,
		Name:          req.Name,
		Code:          req.Code,
		Address:       req.Address,
		ManagerUserID: req.ManagerUserID,
	})
	if err != nil {
		return branch.BranchResponse{}, err
	}

	slog.Info("Branch created", "tenant_id", id.TenantID, "branch_id", created.ID, "code", created.Code)
	s.bump(ctx, id.TenantID)
	return branch.ToResponse(created), nil
}

func (s *MasterServiceImpl) UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}
	if err := s.checkManager(ctx, id.TenantID, req.ManagerUserID); err != nil {
		return branch.BranchResponse{}, err
	}

	if err := s.branchRepo.Update(ctx, id.TenantID, req); err != nil {
		return branch.BranchResponse{}, err
	}

	updated, err := s.branchRepo.GetByID(ctx, id.TenantID, req.ID)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	s.bump(ctx, id.TenantID)
	return branch.ToResponse(updated), nil
}

func (s *MasterServiceImpl) DeleteBranch(ctx context.Context, branchID string) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}
	if err := s.branchRepo.Delete(ctx, id.TenantID, branchID); err != nil {
		return err
	}
	s.bump(ctx, id.TenantID)
	return nil
}

// checkManager requires the manager to be an active user of the tenant.
func (s *MasterServiceImpl) checkManager(ctx context.Context, tenantID string, managerUserID *string) error {
	if managerUserID == nil {
		return nil
	}
	u, err := s.userRepo.GetByID(ctx, tenantID, *managerUserID)
	if err != nil || !u.IsActive {
		return branch.ErrManagerNotFound
	}
	return nil
}

// ========================================
// DEPARTMENT
// ========================================

func (s *MasterServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	departments, err := s.departmentRepo.List(ctx, id.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	resp := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		resp = append(resp, department.ToResponse(d))
	}
	return resp, nil
}

func (s *MasterServiceImpl) CreateDepartment(ctx context.Context, req department.UpsertDepartmentRequest) (department.DepartmentResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	exists, err := s.departmentRepo.ExistsByName(ctx, id.TenantID, req.Name)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to check department name: %w", err)
	}
	if exists {
		return department.DepartmentResponse{}, department.ErrDepartmentNameExists
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{TenantID: id.TenantID, Name: req.Name})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	s.bump(ctx, id.TenantID)
	return department.ToResponse(created), nil
}

func (s *MasterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpsertDepartmentRequest) (department.DepartmentResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	current, err := s.departmentRepo.GetByID(ctx, id.TenantID, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if current.Name == req.Name {
		return department.ToResponse(current), nil
	}

	exists, err := s.departmentRepo.ExistsByName(ctx, id.TenantID, req.Name)
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to check department name: %w", err)
	}
	if exists {
		return department.DepartmentResponse{}, department.ErrDepartmentNameExists
	}

	if err := s.departmentRepo.Rename(ctx, id.TenantID, req.ID, req.Name); err != nil {
		return department.DepartmentResponse{}, err
	}
	current.Name = req.Name
	s.bump(ctx, id.TenantID)
	return department.ToResponse(current), nil
}

func (s *MasterServiceImpl) DeleteDepartment(ctx context.Context, departmentID string) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}
	if err := s.departmentRepo.Delete(ctx, id.TenantID, departmentID); err != nil {
		return err
	}
	s.bump(ctx, id.TenantID)
	return nil
}

func (s *MasterServiceImpl) bump(ctx context.Context, tenantID string) {
	if err := s.cache.Bump(ctx, tenantID); err != nil {
		slog.Warn("Failed to invalidate dashboard cache", "tenant_id", tenantID, "error", err)
	}
}
