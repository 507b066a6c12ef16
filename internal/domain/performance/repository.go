package performance

import "context"

type ReviewRepository interface {
	Create(ctx context.Context, review Review) (Review, error)
	GetByID(ctx context.Context, tenantID, id string) (Review, error)
	List(ctx context.Context, tenantID string, filter ReviewFilter) ([]Review, int64, error)
	ExistsForPeriod(ctx context.Context, tenantID, employeeID, period string) (bool, error)
	Update(ctx context.Context, review Review) error
	AverageRating(ctx context.Context, tenantID string) (float64, error)
}
