package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	ListPolicies(w http.ResponseWriter, r *http.Request)
	CreatePolicy(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	DecideRequest(w http.ResponseWriter, r *http.Request)

	GetBalances(w http.ResponseWriter, r *http.Request)

	ListHolidays(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)

	ExportReport(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// ========== TYPES ==========

func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := l.leaveService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, types)
}

func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if !decodeJSON(w, r, "CreateLeaveType", &req) {
		return
	}

	created, err := l.leaveService.CreateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave type created successfully", created)
}

func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if !decodeJSON(w, r, "UpdateLeaveType", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := l.leaveService.UpdateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type updated successfully", updated)
}

// DeleteType deactivates rather than removes.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.DeactivateType(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type deactivated successfully", nil)
}

// ========== POLICIES ==========

func (l *LeaveHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := l.leaveService.ListPolicies(r.Context(), queryString(r, "leaveTypeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, policies)
}

func (l *LeaveHandlerImpl) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeavePolicyRequest
	if !decodeJSON(w, r, "CreateLeavePolicy", &req) {
		return
	}

	created, err := l.leaveService.CreatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave policy created successfully", created)
}

func (l *LeaveHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeavePolicyRequest
	if !decodeJSON(w, r, "UpdateLeavePolicy", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := l.leaveService.UpdatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave policy updated successfully", updated)
}

// ========== REQUESTS ==========

// CreateRequest submits for the caller's own employee profile when employeeId is omitted.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequestRequest
	if !decodeJSON(w, r, "SubmitLeaveRequest", &req) {
		return
	}
	if req.EmployeeID == "" {
		if id, ok := auth.IdentityFromContext(r.Context()); ok && id.EmployeeID != nil {
			req.EmployeeID = *id.EmployeeID
		}
	}

	result, err := l.leaveService.SubmitRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted successfully", result)
}

func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveRequestFilter{
		EmployeeID:  queryString(r, "employeeId"),
		Status:      queryString(r, "status"),
		LeaveTypeID: queryString(r, "leaveTypeId"),
		StartDate:   queryString(r, "startDate"),
		EndDate:     queryString(r, "endDate"),
		BranchID:    queryString(r, "branchId"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := l.leaveService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Requests, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	request, err := l.leaveService.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request)
}

func (l *LeaveHandlerImpl) DecideRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.DecisionRequest
	if !decodeJSON(w, r, "DecideLeaveRequest", &req) {
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	decided, err := l.leaveService.DecideRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request decided successfully", decided)
}

// ========== BALANCES ==========

func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := l.leaveService.GetBalances(r.Context(), chi.URLParam(r, "employeeId"), queryInt(r, "year", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// ========== HOLIDAYS ==========

func (l *LeaveHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := l.leaveService.ListHolidays(r.Context(), queryInt(r, "year", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, holidays)
}

func (l *LeaveHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateHolidayRequest
	if !decodeJSON(w, r, "CreateHoliday", &req) {
		return
	}

	created, err := l.leaveService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Holiday created successfully", created)
}

func (l *LeaveHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

func (l *LeaveHandlerImpl) ExportReport(w http.ResponseWriter, r *http.Request) {
	response.NotImplemented(w, "Leave report export is not available yet")
}
