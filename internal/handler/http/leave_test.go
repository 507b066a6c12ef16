package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveService struct {
	leave.LeaveService
	submitted   leave.SubmitLeaveRequestRequest
	submitErr   error
	filter      leave.LeaveRequestFilter
	decision    leave.DecisionRequest
	decideErr   error
	balanceFor  string
	balanceYear int
}

func (f *fakeLeaveService) SubmitRequest(_ context.Context, req leave.SubmitLeaveRequestRequest) (leave.SubmitLeaveResponse, error) {
	f.submitted = req
	if f.submitErr != nil {
		return leave.SubmitLeaveResponse{}, f.submitErr
	}
	return leave.SubmitLeaveResponse{Request: leave.LeaveRequestResponse{ID: "req-1", Status: "PENDING"}}, nil
}

func (f *fakeLeaveService) ListRequests(_ context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	f.filter = filter
	return leave.ListLeaveRequestResponse{
		Requests:   []leave.LeaveRequestResponse{{ID: "req-1"}},
		TotalCount: 45,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (f *fakeLeaveService) DecideRequest(_ context.Context, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	f.decision = req
	if f.decideErr != nil {
		return leave.LeaveRequestResponse{}, f.decideErr
	}
	return leave.LeaveRequestResponse{ID: req.RequestID, Status: req.Decision}, nil
}

func (f *fakeLeaveService) GetBalances(_ context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	f.balanceFor, f.balanceYear = employeeID, year
	return []leave.LeaveBalanceResponse{{LeaveTypeID: "annual", Year: year, Available: 10}}, nil
}

func TestLeaveHandler_CreateRequest(t *testing.T) {
	t.Run("defaults employee to caller", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := NewLeaveHandler(svc)

		body := `{"leaveTypeId":"annual","startDate":"2025-03-03","endDate":"2025-03-05","reason":"family trip"}`
		req := asRole(httptest.NewRequest(http.MethodPost, "/api/leave/requests", jsonBody(t, body)), user.RoleEmployee)
		rec := httptest.NewRecorder()
		h.CreateRequest(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "emp-1", svc.submitted.EmployeeID)
		assert.Equal(t, "2025-03-03", svc.submitted.StartDate)
	})

	t.Run("business rule failures are itemized", func(t *testing.T) {
		svc := &fakeLeaveService{submitErr: &leave.RequestValidationError{Errors: []string{"insufficient leave balance"}}}
		h := NewLeaveHandler(svc)

		req := asRole(httptest.NewRequest(http.MethodPost, "/api/leave/requests", jsonBody(t, `{"leaveTypeId":"annual"}`)), user.RoleEmployee)
		rec := httptest.NewRecorder()
		h.CreateRequest(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec, nil)
		assert.Equal(t, "error", env.Status)
		assert.JSONEq(t, `["insufficient leave balance"]`, string(env.Errors))
	})
}

func TestLeaveHandler_ListRequests(t *testing.T) {
	svc := &fakeLeaveService{}
	h := NewLeaveHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/leave/requests?status=PENDING&branchId=b-1&page=2&limit=20", nil)
	rec := httptest.NewRecorder()
	h.ListRequests(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.Status)
	assert.Equal(t, "PENDING", *svc.filter.Status)
	require.NotNil(t, svc.filter.BranchID)
	assert.Nil(t, svc.filter.EmployeeID)

	env := decodeEnvelope(t, rec, nil)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, int64(45), env.Meta.Total)
	assert.Equal(t, 3, env.Meta.TotalPages)
}

func TestLeaveHandler_DecideRequest(t *testing.T) {
	t.Run("uses route id", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := NewLeaveHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/leave/requests/req-9/decision", jsonBody(t, `{"decision":"APPROVED"}`))
		rec := serve(http.MethodPut, "/api/leave/requests/{id}/decision", h.DecideRequest, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "req-9", svc.decision.RequestID)
	})

	t.Run("already decided", func(t *testing.T) {
		h := NewLeaveHandler(&fakeLeaveService{decideErr: leave.ErrInvalidStateTransition})

		req := httptest.NewRequest(http.MethodPut, "/api/leave/requests/req-9/decision", jsonBody(t, `{"decision":"REJECTED"}`))
		rec := serve(http.MethodPut, "/api/leave/requests/{id}/decision", h.DecideRequest, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestLeaveHandler_GetBalances(t *testing.T) {
	svc := &fakeLeaveService{}
	h := NewLeaveHandler(svc)

	rec := serve(http.MethodGet, "/api/leave/balances/{employeeId}", h.GetBalances,
		httptest.NewRequest(http.MethodGet, "/api/leave/balances/emp-7?year=2024", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "emp-7", svc.balanceFor)
	assert.Equal(t, 2024, svc.balanceYear)

	rec = serve(http.MethodGet, "/api/leave/balances/{employeeId}", h.GetBalances,
		httptest.NewRequest(http.MethodGet, "/api/leave/balances/emp-7", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.balanceYear)
}

func TestLeaveHandler_ExportReport(t *testing.T) {
	rec := httptest.NewRecorder()
	NewLeaveHandler(&fakeLeaveService{}).ExportReport(rec, httptest.NewRequest(http.MethodGet, "/api/leave/reports/export", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
