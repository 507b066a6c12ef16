package performance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memReviews struct {
	rows  map[string]performance.Review
	order []string
}

func (m *memReviews) Create(_ context.Context, r performance.Review) (performance.Review, error) {
	r.ID = fmt.Sprintf("rv-%d", len(m.order)+1)
	m.rows[r.ID] = r
	m.order = append(m.order, r.ID)
	return r, nil
}

func (m *memReviews) GetByID(_ context.Context, tenantID, id string) (performance.Review, error) {
	r, ok := m.rows[id]
	if !ok || r.TenantID != tenantID {
		return performance.Review{}, performance.ErrReviewNotFound
	}
	return r, nil
}

func (m *memReviews) List(_ context.Context, tenantID string, f performance.ReviewFilter) ([]performance.Review, int64, error) {
	var out []performance.Review
	for _, id := range m.order {
		r := m.rows[id]
		if r.TenantID != tenantID || (f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID) {
			continue
		}
		if f.ExcludeDrafts && r.Status == performance.ReviewStatusDraft {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *memReviews) ExistsForPeriod(_ context.Context, tenantID, employeeID, period string) (bool, error) {
	for _, r := range m.rows {
		if r.TenantID == tenantID && r.EmployeeID == employeeID && r.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviews) Update(_ context.Context, r performance.Review) error {
	m.rows[r.ID] = r
	return nil
}

func (m *memReviews) AverageRating(context.Context, string) (float64, error) { return 0, nil }

type memEmployees struct {
	employee.EmployeeRepository
}

func (memEmployees) GetByID(_ context.Context, tenantID, id string) (employee.Employee, error) {
	if tenantID != "t1" || (id != "e-ana" && id != "e-mgr") {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, TenantID: tenantID, FullName: id}, nil
}

func managerCtx() context.Context {
	emp := "e-mgr"
	return auth.WithIdentity(context.Background(), auth.Identity{UserID: "u-mgr", TenantID: "t1", Role: user.RoleBranchManager, EmployeeID: &emp})
}

func anaCtx() context.Context {
	emp := "e-ana"
	return auth.WithIdentity(context.Background(), auth.Identity{UserID: "u-ana", TenantID: "t1", Role: user.RoleEmployee, EmployeeID: &emp})
}

func newTestService() (*PerformanceServiceImpl, *memReviews) {
	repo := &memReviews{rows: map[string]performance.Review{}}
	svc := NewPerformanceService(repo, memEmployees{}, nil)
	svc.now = func() time.Time { return time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestReviewLifecycle(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.CreateReview(managerCtx(), performance.CreateReviewRequest{EmployeeID: "e-ana", Period: "2025-q1", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "2025-Q1", created.Period)
	assert.Equal(t, "DRAFT", created.Status)
	assert.Equal(t, "u-mgr", created.ReviewerID)

	_, err = svc.GetReview(anaCtx(), created.ID)
	assert.ErrorIs(t, err, performance.ErrUnauthorizedAccess)

	_, err = svc.AcknowledgeReview(anaCtx(), created.ID)
	assert.ErrorIs(t, err, performance.ErrInvalidStatusTransition)

	rating := 5
	updated, err := svc.UpdateReview(managerCtx(), performance.UpdateReviewRequest{ID: created.ID, Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	submitted, err := svc.SubmitReview(managerCtx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SUBMITTED", submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	_, err = svc.UpdateReview(managerCtx(), performance.UpdateReviewRequest{ID: created.ID, Rating: &rating})
	assert.ErrorIs(t, err, performance.ErrReviewNotEditable)

	_, err = svc.AcknowledgeReview(managerCtx(), created.ID)
	assert.ErrorIs(t, err, performance.ErrNotReviewee)

	acked, err := svc.AcknowledgeReview(anaCtx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACKNOWLEDGED", acked.Status)
}

func TestCreateReview_Guards(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateReview(managerCtx(), performance.CreateReviewRequest{EmployeeID: "e-mgr", Period: "2025-Q1", Rating: 3})
	assert.ErrorIs(t, err, performance.ErrCannotReviewSelf)

	_, err = svc.CreateReview(managerCtx(), performance.CreateReviewRequest{EmployeeID: "e-ana", Period: "2025-Q1", Rating: 6})
	assert.Error(t, err)

	_, err = svc.CreateReview(managerCtx(), performance.CreateReviewRequest{EmployeeID: "e-ana", Period: "2025-H1", Rating: 3})
	require.NoError(t, err)
	_, err = svc.CreateReview(managerCtx(), performance.CreateReviewRequest{EmployeeID: "e-ana", Period: "2025-H1", Rating: 2})
	assert.ErrorIs(t, err, performance.ErrReviewExists)
}

func TestListReviews_EmployeeSeesSubmittedOnly(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.CreateReview(managerCtx(), performance.CreateReviewRequest{EmployeeID: "e-ana", Period: "2024-FY", Rating: 4})
	require.NoError(t, err)
	_, err = svc.CreateReview(managerCtx(), performance.CreateReviewRequest{EmployeeID: "e-ana", Period: "2025-Q1", Rating: 3})
	require.NoError(t, err)
	_, err = svc.SubmitReview(managerCtx(), first.ID)
	require.NoError(t, err)

	mine, err := svc.ListReviews(anaCtx(), performance.ReviewFilter{})
	require.NoError(t, err)
	require.Len(t, mine.Reviews, 1)
	assert.Equal(t, first.ID, mine.Reviews[0].ID)

	all, err := svc.ListReviews(managerCtx(), performance.ReviewFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalCount)
}
