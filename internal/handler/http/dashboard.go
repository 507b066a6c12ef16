package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
)

type DashboardHandler interface {
	// GetAdminDashboard returns tenant-wide aggregates
	GetAdminDashboard(w http.ResponseWriter, r *http.Request)
	// GetEmployeeDashboard returns the caller's own overview
	GetEmployeeDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboards demo.Selector[dashboard.DashboardService]
}

func NewDashboardHandler(dashboards demo.Selector[dashboard.DashboardService]) DashboardHandler {
	return &dashboardHandlerImpl{dashboards: dashboards}
}

// GetAdminDashboard handles GET /dashboard/admin
func (h *dashboardHandlerImpl) GetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboards.For(r.Context()).GetAdminDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeDashboard handles GET /dashboard/employee
func (h *dashboardHandlerImpl) GetEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboards.For(r.Context()).GetEmployeeDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
