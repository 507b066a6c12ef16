package master

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
)

type MasterService interface {
	ListBranches(ctx context.Context) ([]branch.BranchResponse, error)
	GetBranch(ctx context.Context, id string) (branch.BranchResponse, error)
	CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error)
	UpdateBranch(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error)
	DeleteBranch(ctx context.Context, id string) error

	ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error)
	CreateDepartment(ctx context.Context, req department.UpsertDepartmentRequest) (department.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req department.UpsertDepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error
}
