package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePerformanceService struct {
	performance.PerformanceService
	filter       performance.ReviewFilter
	update       performance.UpdateReviewRequest
	acknowledged string
	ackErr       error
}

func (f *fakePerformanceService) ListReviews(_ context.Context, filter performance.ReviewFilter) (performance.ListReviewResponse, error) {
	f.filter = filter
	return performance.ListReviewResponse{Reviews: []performance.ReviewResponse{}, Page: filter.Page, Limit: filter.Limit}, nil
}

func (f *fakePerformanceService) UpdateReview(_ context.Context, req performance.UpdateReviewRequest) (performance.ReviewResponse, error) {
	f.update = req
	return performance.ReviewResponse{ID: req.ID}, nil
}

func (f *fakePerformanceService) AcknowledgeReview(_ context.Context, id string) (performance.ReviewResponse, error) {
	f.acknowledged = id
	if f.ackErr != nil {
		return performance.ReviewResponse{}, f.ackErr
	}
	return performance.ReviewResponse{ID: id}, nil
}

func TestPerformanceHandler_ListReviewsFilter(t *testing.T) {
	svc := &fakePerformanceService{}
	h := NewPerformanceHandler(svc)

	req := asRole(httptest.NewRequest(http.MethodGet, "/performance/reviews?period=2025-Q1&status=SUBMITTED&page=2&limit=5", nil), user.RoleHR)
	rec := serve(http.MethodGet, "/performance/reviews", h.ListReviews, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.Period)
	assert.Equal(t, "2025-Q1", *svc.filter.Period)
	require.NotNil(t, svc.filter.Status)
	assert.Equal(t, "SUBMITTED", *svc.filter.Status)
	assert.Nil(t, svc.filter.EmployeeID)
	assert.Equal(t, 2, svc.filter.Page)
	assert.Equal(t, 5, svc.filter.Limit)
}

func TestPerformanceHandler_UpdateReview(t *testing.T) {
	svc := &fakePerformanceService{}
	h := NewPerformanceHandler(svc)

	req := asRole(httptest.NewRequest(http.MethodPut, "/performance/reviews/rev-3", jsonBody(t, map[string]int{"rating": 4})), user.RoleBranchManager)
	rec := serve(http.MethodPut, "/performance/reviews/{id}", h.UpdateReview, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rev-3", svc.update.ID)
	require.NotNil(t, svc.update.Rating)
	assert.Equal(t, 4, *svc.update.Rating)
}

func TestPerformanceHandler_Acknowledge(t *testing.T) {
	svc := &fakePerformanceService{}
	h := NewPerformanceHandler(svc)

	req := asRole(httptest.NewRequest(http.MethodPost, "/performance/reviews/rev-1/acknowledge", nil), user.RoleEmployee)
	rec := serve(http.MethodPost, "/performance/reviews/{id}/acknowledge", h.AcknowledgeReview, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rev-1", svc.acknowledged)

	svc.ackErr = performance.ErrNotReviewee
	rec = serve(http.MethodPost, "/performance/reviews/{id}/acknowledge", h.AcknowledgeReview,
		asRole(httptest.NewRequest(http.MethodPost, "/performance/reviews/rev-1/acknowledge", nil), user.RoleEmployee))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
