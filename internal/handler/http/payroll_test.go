package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	payroll.PayrollService
	filter     payroll.PayrollFilter
	status     payroll.UpdatePayrollStatusRequest
	decision   payroll.DecideAdvanceRequest
	payslipErr error
}

func (f *fakePayrollService) ListRecords(_ context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	f.filter = filter
	return payroll.ListPayrollResponse{
		Records:    []payroll.PayrollRecordResponse{{ID: "pay-1", PeriodMonth: 3, PeriodYear: 2025}},
		TotalCount: 1,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (f *fakePayrollService) UpdateStatus(_ context.Context, req payroll.UpdatePayrollStatusRequest) (payroll.PayrollRecordResponse, error) {
	f.status = req
	return payroll.PayrollRecordResponse{ID: req.ID, Status: req.Status}, nil
}

func (f *fakePayrollService) Payslip(_ context.Context, id string) ([]byte, string, error) {
	if f.payslipErr != nil {
		return nil, "", f.payslipErr
	}
	return []byte("%PDF-1.3 payslip"), "payslip-" + id + ".pdf", nil
}

func (f *fakePayrollService) DecideAdvance(_ context.Context, req payroll.DecideAdvanceRequest) (payroll.SalaryAdvanceResponse, error) {
	f.decision = req
	if req.Decision == "APPROVED" {
		return payroll.SalaryAdvanceResponse{}, payroll.ErrAdvanceAlreadyDecided
	}
	return payroll.SalaryAdvanceResponse{ID: req.ID}, nil
}

func TestPayrollHandler_ListRecordsFilter(t *testing.T) {
	svc := &fakePayrollService{}
	h := NewPayrollHandler(svc)

	req := asRole(httptest.NewRequest(http.MethodGet, "/payroll/records?employeeId=emp-9&month=3&year=2025&status=PAID", nil), user.RoleHR)
	rec := serve(http.MethodGet, "/payroll/records", h.ListPayrollRecords, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.EmployeeID)
	assert.Equal(t, "emp-9", *svc.filter.EmployeeID)
	require.NotNil(t, svc.filter.Month)
	assert.Equal(t, 3, *svc.filter.Month)
	require.NotNil(t, svc.filter.Year)
	assert.Equal(t, 2025, *svc.filter.Year)
	require.NotNil(t, svc.filter.Status)
	assert.Equal(t, "PAID", *svc.filter.Status)

	env := decodeEnvelope(t, rec, nil)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)
}

func TestPayrollHandler_UpdateStatusUsesRouteID(t *testing.T) {
	svc := &fakePayrollService{}
	h := NewPayrollHandler(svc)

	req := asRole(httptest.NewRequest(http.MethodPut, "/payroll/records/pay-7/status", jsonBody(t, map[string]string{"status": "PROCESSED"})), user.RoleHR)
	rec := serve(http.MethodPut, "/payroll/records/{id}/status", h.UpdatePayrollStatus, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pay-7", svc.status.ID)
	assert.Equal(t, "PROCESSED", svc.status.Status)
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	h := NewPayrollHandler(&fakePayrollService{})

	req := asRole(httptest.NewRequest(http.MethodGet, "/payroll/records/pay-1/payslip", nil), user.RoleEmployee)
	rec := serve(http.MethodGet, "/payroll/records/{id}/payslip", h.DownloadPayslip, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="payslip-pay-1.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "16", rec.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-1.3 payslip", rec.Body.String())
}

func TestPayrollHandler_DownloadPayslipForbidden(t *testing.T) {
	h := NewPayrollHandler(&fakePayrollService{payslipErr: payroll.ErrUnauthorizedAccess})

	req := asRole(httptest.NewRequest(http.MethodGet, "/payroll/records/pay-1/payslip", nil), user.RoleEmployee)
	rec := serve(http.MethodGet, "/payroll/records/{id}/payslip", h.DownloadPayslip, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestPayrollHandler_DecideAdvance(t *testing.T) {
	svc := &fakePayrollService{}
	h := NewPayrollHandler(svc)

	req := asRole(httptest.NewRequest(http.MethodPut, "/payroll/advances/adv-1/decision", jsonBody(t, map[string]string{"decision": "REJECTED"})), user.RoleHR)
	rec := serve(http.MethodPut, "/payroll/advances/{id}/decision", h.DecideAdvance, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "adv-1", svc.decision.ID)

	req = asRole(httptest.NewRequest(http.MethodPut, "/payroll/advances/adv-1/decision", jsonBody(t, map[string]string{"decision": "APPROVED"})), user.RoleHR)
	rec = serve(http.MethodPut, "/payroll/advances/{id}/decision", h.DecideAdvance, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
