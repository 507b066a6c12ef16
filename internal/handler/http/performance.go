package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PerformanceHandler interface {
	ListReviews(w http.ResponseWriter, r *http.Request)
	GetReview(w http.ResponseWriter, r *http.Request)
	CreateReview(w http.ResponseWriter, r *http.Request)
	UpdateReview(w http.ResponseWriter, r *http.Request)
	SubmitReview(w http.ResponseWriter, r *http.Request)
	AcknowledgeReview(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &performanceHandlerImpl{performanceService: performanceService}
}

func (h *performanceHandlerImpl) ListReviews(w http.ResponseWriter, r *http.Request) {
	filter := performance.ReviewFilter{
		EmployeeID: queryString(r, "employeeId"),
		ReviewerID: queryString(r, "reviewerId"),
		Period:     queryString(r, "period"),
		Status:     queryString(r, "status"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.performanceService.ListReviews(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Reviews, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *performanceHandlerImpl) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.performanceService.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, review)
}

func (h *performanceHandlerImpl) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req performance.CreateReviewRequest
	if !decodeJSON(w, r, "CreateReview", &req) {
		return
	}

	review, err := h.performanceService.CreateReview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Performance review created successfully", review)
}

func (h *performanceHandlerImpl) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req performance.UpdateReviewRequest
	if !decodeJSON(w, r, "UpdateReview", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	review, err := h.performanceService.UpdateReview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Performance review updated successfully", review)
}

func (h *performanceHandlerImpl) SubmitReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.performanceService.SubmitReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Performance review submitted", review)
}

func (h *performanceHandlerImpl) AcknowledgeReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.performanceService.AcknowledgeReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Performance review acknowledged", review)
}
