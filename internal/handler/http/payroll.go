package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Payroll Records
	CreatePayrollRecord(w http.ResponseWriter, r *http.Request)
	GetPayrollRecord(w http.ResponseWriter, r *http.Request)
	ListPayrollRecords(w http.ResponseWriter, r *http.Request)
	UpdatePayrollStatus(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)

	// Salary Advances
	RequestAdvance(w http.ResponseWriter, r *http.Request)
	ListAdvances(w http.ResponseWriter, r *http.Request)
	DecideAdvance(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) CreatePayrollRecord(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRecordRequest
	if !decodeJSON(w, r, "CreatePayrollRecord", &req) {
		return
	}

	result, err := h.payrollService.CreateRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record created successfully", result)
}

func (h *payrollHandlerImpl) GetPayrollRecord(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		EmployeeID: queryString(r, "employeeId"),
		Month:      queryIntPtr(r, "month"),
		Year:       queryIntPtr(r, "year"),
		Status:     queryString(r, "status"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) UpdatePayrollStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayrollStatusRequest
	if !decodeJSON(w, r, "UpdatePayrollStatus", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll status updated successfully", result)
}

func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	pdf, filename, err := h.payrollService.Payslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Error("write payslip", "error", err)
	}
}

// ========== ADVANCES ==========

func (h *payrollHandlerImpl) RequestAdvance(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateAdvanceRequest
	if !decodeJSON(w, r, "RequestAdvance", &req) {
		return
	}

	result, err := h.payrollService.RequestAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary advance requested successfully", result)
}

func (h *payrollHandlerImpl) ListAdvances(w http.ResponseWriter, r *http.Request) {
	filter := payroll.AdvanceFilter{
		EmployeeID: queryString(r, "employeeId"),
		Status:     queryString(r, "status"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.payrollService.ListAdvances(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Advances, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) DecideAdvance(w http.ResponseWriter, r *http.Request) {
	var req payroll.DecideAdvanceRequest
	if !decodeJSON(w, r, "DecideAdvance", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.DecideAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary advance decided successfully", result)
}
