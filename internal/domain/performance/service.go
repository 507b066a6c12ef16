package performance

import "context"

type PerformanceService interface {
	ListReviews(ctx context.Context, filter ReviewFilter) (ListReviewResponse, error)
	GetReview(ctx context.Context, id string) (ReviewResponse, error)
	CreateReview(ctx context.Context, req CreateReviewRequest) (ReviewResponse, error)
	UpdateReview(ctx context.Context, req UpdateReviewRequest) (ReviewResponse, error)
	SubmitReview(ctx context.Context, id string) (ReviewResponse, error)
	AcknowledgeReview(ctx context.Context, id string) (ReviewResponse, error)
}
