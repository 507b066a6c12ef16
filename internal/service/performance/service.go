package performance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cache"
)

type PerformanceServiceImpl struct {
	reviewRepo   performance.ReviewRepository
	employeeRepo employee.EmployeeRepository
	cache        *cache.Cache
	now          func() time.Time
}

func NewPerformanceService(reviewRepo performance.ReviewRepository, employeeRepo employee.EmployeeRepository, c *cache.Cache) *PerformanceServiceImpl {
	return &PerformanceServiceImpl{
		reviewRepo:   reviewRepo,
		employeeRepo: employeeRepo,
		cache:        c,
		now:          time.Now,
	}
}

func (s *PerformanceServiceImpl) ListReviews(ctx context.Context, filter performance.ReviewFilter) (performance.ListReviewResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return performance.ListReviewResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return performance.ListReviewResponse{}, err
	}

	resp := performance.ListReviewResponse{Reviews: []performance.ReviewResponse{}, Page: filter.Page, Limit: filter.Limit}
	if !id.Can(user.PermissionPerformanceManage) {
		if id.EmployeeID == nil {
			return resp, nil
		}
		filter.EmployeeID = id.EmployeeID
		filter.ExcludeDrafts = true
	}

	reviews, total, err := s.reviewRepo.List(ctx, id.TenantID, filter)
	if err != nil {
		return performance.ListReviewResponse{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, performance.ToResponse(r))
	}
	resp.TotalCount = total
	return resp, nil
}

func (s *PerformanceServiceImpl) GetReview(ctx context.Context, reviewID string) (performance.ReviewResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return performance.ReviewResponse{}, err
	}

	review, err := s.reviewRepo.GetByID(ctx, id.TenantID, reviewID)
	if err != nil {
		return performance.ReviewResponse{}, err
	}
	if !id.Can(user.PermissionPerformanceManage) {
		if !ownsEmployee(id, review.EmployeeID) || review.Status == performance.ReviewStatusDraft {
			return performance.ReviewResponse{}, performance.ErrUnauthorizedAccess
		}
	}
	return performance.ToResponse(review), nil
}

func (s *PerformanceServiceImpl) CreateReview(ctx context.Context, req performance.CreateReviewRequest) (performance.ReviewResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return performance.ReviewResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return performance.ReviewResponse{}, err
	}
	if ownsEmployee(id, req.EmployeeID) {
		return performance.ReviewResponse{}, performance.ErrCannotReviewSelf
	}

	emp, err := s.employeeRepo.GetByID(ctx, id.TenantID, req.EmployeeID)
	if err != nil {
		return performance.ReviewResponse{}, err
	}

	exists, err := s.reviewRepo.ExistsForPeriod(ctx, id.TenantID, emp.ID, req.Period)
	if err != nil {
		return performance.ReviewResponse{}, fmt.Errorf("failed to check review period: %w", err)
	}
	if exists {
		return performance.ReviewResponse{}, performance.ErrReviewExists
	}

	created, err := s.reviewRepo.Create(ctx, performance.Review{
		TenantID:   id.TenantID,
		EmployeeID: emp.ID,
		ReviewerID: id.UserID,
		Period:     req.Period,
		Rating:     req.Rating,
		Goals:      req.Goals,
		Comments:   req.Comments,
		Status:     performance.ReviewStatusDraft,
	})
	if err != nil {
		return performance.ReviewResponse{}, err
	}
	created.EmployeeName = &emp.FullName

	slog.Info("Performance review created", "tenant_id", id.TenantID, "review_id", created.ID, "employee_id", emp.ID, "period", created.Period)
	return performance.ToResponse(created), nil
}

func (s *PerformanceServiceImpl) UpdateReview(ctx context.Context, req performance.UpdateReviewRequest) (performance.ReviewResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return performance.ReviewResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return performance.ReviewResponse{}, err
	}

	review, err := s.reviewerOwned(ctx, id, req.ID)
	if err != nil {
		return performance.ReviewResponse{}, err
	}
	if !review.Editable() {
		return performance.ReviewResponse{}, performance.ErrReviewNotEditable
	}

	req.Apply(&review)
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return performance.ReviewResponse{}, err
	}
	return performance.ToResponse(review), nil
}

// SubmitReview moves a draft to SUBMITTED and makes it visible to the employee.
func (s *PerformanceServiceImpl) SubmitReview(ctx context.Context, reviewID string) (performance.ReviewResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return performance.ReviewResponse{}, err
	}

	review, err := s.reviewerOwned(ctx, id, reviewID)
	if err != nil {
		return performance.ReviewResponse{}, err
	}
	if review.Status != performance.ReviewStatusDraft {
		return performance.ReviewResponse{}, performance.ErrInvalidStatusTransition
	}

	now := s.now()
	review.Status = performance.ReviewStatusSubmitted
	review.SubmittedAt = &now
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return performance.ReviewResponse{}, err
	}

	slog.Info("Performance review submitted", "tenant_id", id.TenantID, "review_id", review.ID, "rating", review.Rating)
	s.bumpDashboard(ctx, id.TenantID)
	return performance.ToResponse(review), nil
}

func (s *PerformanceServiceImpl) AcknowledgeReview(ctx context.Context, reviewID string) (performance.ReviewResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return performance.ReviewResponse{}, err
	}

	review, err := s.reviewRepo.GetByID(ctx, id.TenantID, reviewID)
	if err != nil {
		return performance.ReviewResponse{}, err
	}
	if !ownsEmployee(id, review.EmployeeID) {
		return performance.ReviewResponse{}, performance.ErrNotReviewee
	}
	if review.Status != performance.ReviewStatusSubmitted {
		return performance.ReviewResponse{}, performance.ErrInvalidStatusTransition
	}

	now := s.now()
	review.Status = performance.ReviewStatusAcknowledged
	review.AcknowledgedAt = &now
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return performance.ReviewResponse{}, err
	}
	return performance.ToResponse(review), nil
}

// reviewerOwned loads a review the caller may edit: its reviewer, or HR and admins.
func (s *PerformanceServiceImpl) reviewerOwned(ctx context.Context, id auth.Identity, reviewID string) (performance.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id.TenantID, reviewID)
	if err != nil {
		return performance.Review{}, err
	}
	if review.ReviewerID != id.UserID && id.Role != user.RoleHR && id.Role != user.RoleAdmin {
		return performance.Review{}, performance.ErrUnauthorizedAccess
	}
	return review, nil
}

func (s *PerformanceServiceImpl) bumpDashboard(ctx context.Context, tenantID string) {
	if err := s.cache.Bump(ctx, tenantID); err != nil {
		slog.Warn("Failed to invalidate dashboard cache", "tenant_id", tenantID, "error", err)
	}
}

func ownsEmployee(id auth.Identity, employeeID string) bool {
	return id.EmployeeID != nil && *id.EmployeeID == employeeID
}
