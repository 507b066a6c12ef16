package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	ImportEmployees(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employees demo.Selector[employee.EmployeeService]
}

func NewEmployeeHandler(employees demo.Selector[employee.EmployeeService]) EmployeeHandler {
	return &employeeHandlerImpl{employees: employees}
}

// ListEmployees implements EmployeeHandler.
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{
		BranchID:     queryString(r, "branchId"),
		DepartmentID: queryString(r, "departmentId"),
		Status:       queryString(r, "status"),
		Search:       queryString(r, "search"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.employees.For(r.Context()).ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Employees, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// GetEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.employees.For(r.Context()).GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, emp)
}

// CreateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, "CreateEmployee", &req) {
		return
	}

	created, err := h.employees.For(r.Context()).CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created successfully", created)
}

// UpdateEmployee implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, "UpdateEmployee", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.employees.For(r.Context()).UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// DeleteEmployee terminates the employee; the row is kept.
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.employees.For(r.Context()).TerminateEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee terminated successfully", nil)
}

// ImportEmployees implements EmployeeHandler.
func (h *employeeHandlerImpl) ImportEmployees(w http.ResponseWriter, r *http.Request) {
	response.NotImplemented(w, "Employee import is not available yet")
}
