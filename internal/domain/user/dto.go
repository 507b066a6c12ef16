package user

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenantId"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	MFAEnabled  bool       `json:"mfaEnabled"`
	EmployeeID  *string    `json:"employeeId,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		MFAEnabled:  u.MFAEnabled,
		EmployeeID:  u.EmployeeID,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type UserFilter struct {
	Role     *string
	IsActive *bool
	Search   *string
	Page     int
	Limit    int
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	} else if !Role(r.Role).IsValid() {
		errs.Add("role", "invalid role")
	}

	return errs.Err()
}

// UpdateUserRoleRequest represents request to update user role
type UpdateUserRoleRequest struct {
	ID   string `json:"-"`
	Role string `json:"role"`
}

func (r *UpdateUserRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	} else if !Role(r.Role).IsValid() {
		errs.Add("role", "invalid role")
	}

	return errs.Err()
}

type UpdateUserStatusRequest struct {
	ID       string `json:"-"`
	IsActive *bool  `json:"isActive"`
}

func (r *UpdateUserStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.IsActive == nil {
		errs.Add("isActive", "isActive is required")
	}

	return errs.Err()
}
