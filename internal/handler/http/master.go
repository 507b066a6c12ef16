package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	// Branch handlers
	CreateBranch(w http.ResponseWriter, r *http.Request)
	GetBranch(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)
	UpdateBranch(w http.ResponseWriter, r *http.Request)
	DeleteBranch(w http.ResponseWriter, r *http.Request)

	// Department handlers
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== BRANCH HANDLERS ====================

func (h *masterHandlerImpl) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
	if !decodeJSON(w, r, "CreateBranch", &req) {
		return
	}

	created, err := h.masterService.CreateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Branch created successfully", created)
}

func (h *masterHandlerImpl) GetBranch(w http.ResponseWriter, r *http.Request) {
	b, err := h.masterService.GetBranch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, b)
}

func (h *masterHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.masterService.ListBranches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, branches)
}

func (h *masterHandlerImpl) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.UpdateBranchRequest
	if !decodeJSON(w, r, "UpdateBranch", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.masterService.UpdateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Branch updated successfully", updated)
}

func (h *masterHandlerImpl) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteBranch(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Branch deleted successfully", nil)
}

// ==================== DEPARTMENT HANDLERS ====================

func (h *masterHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.UpsertDepartmentRequest
	if !decodeJSON(w, r, "CreateDepartment", &req) {
		return
	}

	created, err := h.masterService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Department created successfully", created)
}

func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.masterService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, departments)
}

func (h *masterHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.UpsertDepartmentRequest
	if !decodeJSON(w, r, "UpdateDepartment", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.masterService.UpdateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Department updated successfully", updated)
}

func (h *masterHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}
