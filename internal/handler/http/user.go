package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	users demo.Selector[user.UserService]
}

func NewUserHandler(users demo.Selector[user.UserService]) UserHandler {
	return &userHandlerImpl{users: users}
}

func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := user.UserFilter{
		Role:   queryString(r, "role"),
		Search: queryString(r, "search"),
	}
	if v := r.URL.Query().Get("isActive"); v == "true" || v == "false" {
		active := v == "true"
		filter.IsActive = &active
	}
	filter.Page, filter.Limit = pagination(r)

	users, total, err := h.users.For(r.Context()).List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, users, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.For(r.Context()).Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, u)
}

func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if !decodeJSON(w, r, "CreateUser", &req) {
		return
	}

	created, err := h.users.For(r.Context()).Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "User created successfully", created)
}

func (h *userHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRoleRequest
	if !decodeJSON(w, r, "UpdateUserRole", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.users.For(r.Context()).UpdateRole(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User role updated successfully", nil)
}

func (h *userHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserStatusRequest
	if !decodeJSON(w, r, "UpdateUserStatus", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.users.For(r.Context()).UpdateStatus(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "User status updated successfully", nil)
}
