package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, tenantID, id string) (Department, error)
	List(ctx context.Context, tenantID string) ([]Department, error)
	ExistsByName(ctx context.Context, tenantID, name string) (bool, error)
	Rename(ctx context.Context, tenantID, id, name string) error
	Delete(ctx context.Context, tenantID, id string) error
}
