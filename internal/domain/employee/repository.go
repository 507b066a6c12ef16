package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (Employee, error)
	GetByUserID(ctx context.Context, tenantID, userID string) (Employee, error)
	List(ctx context.Context, tenantID string, filter EmployeeFilter) ([]Employee, int64, error)
	ListActive(ctx context.Context, tenantID string) ([]Employee, error)
	ListActiveTenants(ctx context.Context) ([]string, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByCodeOrEmail(ctx context.Context, tenantID string, employeeCode, email string) (bool, error)
	Update(ctx context.Context, tenantID, id string, req UpdateEmployeeRequest) error
	UpdateStatus(ctx context.Context, tenantID, id string, status EmploymentStatus) error
}
