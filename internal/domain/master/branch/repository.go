package branch

import "context"

type BranchRepository interface {
	Create(ctx context.Context, branch Branch) (Branch, error)
	GetByID(ctx context.Context, tenantID, id string) (Branch, error)
	List(ctx context.Context, tenantID string) ([]Branch, error)
	ExistsByCode(ctx context.Context, tenantID, code string) (bool, error)
	Update(ctx context.Context, tenantID string, req UpdateBranchRequest) error
	Delete(ctx context.Context, tenantID, id string) error
}
