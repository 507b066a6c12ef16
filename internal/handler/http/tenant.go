package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/tenant"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
)

type TenantHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	UpdateMine(w http.ResponseWriter, r *http.Request)
	GetSecuritySettings(w http.ResponseWriter, r *http.Request)
	UpdateSecuritySettings(w http.ResponseWriter, r *http.Request)
}

type tenantHandlerImpl struct {
	tenantService tenant.TenantService
	settings      demo.Selector[settings.SettingsService]
}

func NewTenantHandler(tenantService tenant.TenantService, settingsSelector demo.Selector[settings.SettingsService]) TenantHandler {
	return &tenantHandlerImpl{tenantService: tenantService, settings: settingsSelector}
}

func (h *tenantHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenantService.GetMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, t)
}

func (h *tenantHandlerImpl) UpdateMine(w http.ResponseWriter, r *http.Request) {
	var req tenant.UpdateTenantRequest
	if !decodeJSON(w, r, "UpdateTenant", &req) {
		return
	}

	t, err := h.tenantService.UpdateMine(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Tenant updated successfully", t)
}

func (h *tenantHandlerImpl) GetSecuritySettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.For(r.Context()).GetSecurity(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, s)
}

func (h *tenantHandlerImpl) UpdateSecuritySettings(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSecuritySettingsRequest
	if !decodeJSON(w, r, "UpdateSecuritySettings", &req) {
		return
	}

	s, err := h.settings.For(r.Context()).UpdateSecurity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Security settings updated successfully", s)
}
