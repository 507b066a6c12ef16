package department

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name}
}

type UpsertDepartmentRequest struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}

func (r *UpsertDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}

	return errs.Err()
}
