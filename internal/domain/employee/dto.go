package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeResponse struct {
	ID               string          `json:"id"`
	UserID           *string         `json:"userId,omitempty"`
	EmployeeCode     string          `json:"employeeCode"`
	FullName         string          `json:"fullName"`
	Email            string          `json:"email"`
	Position         string          `json:"position"`
	DepartmentID     *string         `json:"departmentId,omitempty"`
	DepartmentName   *string         `json:"departmentName,omitempty"`
	BranchID         *string         `json:"branchId,omitempty"`
	BranchName       *string         `json:"branchName,omitempty"`
	HireDate         string          `json:"hireDate"`
	EmploymentStatus string          `json:"employmentStatus"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Email:            e.Email,
		Position:         e.Position,
		DepartmentID:     e.DepartmentID,
		DepartmentName:   e.DepartmentName,
		BranchID:         e.BranchID,
		BranchName:       e.BranchName,
		HireDate:         e.HireDate.Format("2006-01-02"),
		EmploymentStatus: string(e.EmploymentStatus),
		BaseSalary:       e.BaseSalary,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"totalCount"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type EmployeeFilter struct {
	BranchID     *string
	DepartmentID *string
	Status       *string
	Search       *string
	Page         int
	Limit        int
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !EmploymentStatus(*f.Status).IsValid() {
		errs.Add("status", "status must be ACTIVE, ON_LEAVE or TERMINATED")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	return errs.Err()
}

type CreateEmployeeRequest struct {
	UserID       *string         `json:"userId,omitempty"`
	EmployeeCode string          `json:"employeeCode"`
	FullName     string          `json:"fullName" validate:"required,max=255"`
	Email        string          `json:"email" validate:"required,email"`
	Position     string          `json:"position" validate:"required,max=100"`
	DepartmentID *string         `json:"departmentId,omitempty"`
	BranchID     *string         `json:"branchId,omitempty"`
	HireDate     string          `json:"hireDate"`
	BaseSalary   decimal.Decimal `json:"baseSalary"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.EmployeeCode = strings.ToUpper(strings.TrimSpace(r.EmployeeCode))

	errs := validator.Struct(r)

	if validator.IsEmpty(r.EmployeeCode) {
		errs.Add("employeeCode", "employeeCode is required")
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs.Add("employeeCode", "invalid employee code format")
	}

	if validator.IsEmpty(r.HireDate) {
		errs.Add("hireDate", "hireDate is required")
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs.Add("hireDate", "hireDate must be in YYYY-MM-DD format")
	}

	if r.BaseSalary.IsNegative() {
		errs.Add("baseSalary", "baseSalary must not be negative")
	}

	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs.Add("departmentId", "departmentId must be a valid UUID")
	}
	if r.BranchID != nil && !validator.IsValidUUID(*r.BranchID) {
		errs.Add("branchId", "branchId must be a valid UUID")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID           string           `json:"-"`
	FullName     *string          `json:"fullName,omitempty"`
	Email        *string          `json:"email,omitempty"`
	Position     *string          `json:"position,omitempty"`
	DepartmentID *string          `json:"departmentId,omitempty"`
	BranchID     *string          `json:"branchId,omitempty"`
	Status       *string          `json:"employmentStatus,omitempty"`
	BaseSalary   *decimal.Decimal `json:"baseSalary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs.Add("fullName", "fullName must not be empty")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs.Add("position", "position must not be empty")
	}
	// Empty ids clear the assignment.
	if r.DepartmentID != nil && *r.DepartmentID != "" && !validator.IsValidUUID(*r.DepartmentID) {
		errs.Add("departmentId", "departmentId must be a valid UUID")
	}
	if r.BranchID != nil && *r.BranchID != "" && !validator.IsValidUUID(*r.BranchID) {
		errs.Add("branchId", "branchId must be a valid UUID")
	}
	if r.Status != nil && !EmploymentStatus(*r.Status).IsValid() {
		errs.Add("employmentStatus", "employmentStatus must be ACTIVE, ON_LEAVE or TERMINATED")
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs.Add("baseSalary", "baseSalary must not be negative")
	}

	return errs.Err()
}
