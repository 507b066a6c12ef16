package branch

import (
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// BranchResponse represents the response structure for a branch.
type BranchResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Address       *string `json:"address,omitempty"`
	ManagerUserID *string `json:"managerUserId,omitempty"`
}

func ToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:            b.ID,
		Name:          b.Name,
		Code:          b.Code,
		Address:       b.Address,
		ManagerUserID: b.ManagerUserID,
	}
}

// CreateBranchRequest represents the request structure for creating a branch.
type CreateBranchRequest struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Address       *string `json:"address,omitempty"`
	ManagerUserID *string `json:"managerUserId,omitempty"`
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))

	// Name
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}

	if validator.IsEmpty(r.Code) {
		errs.Add("code", "code is required")
	} else if len(r.Code) > 20 {
		errs.Add("code", "code must not exceed 20 characters")
	}

	if r.ManagerUserID != nil && !validator.IsValidUUID(*r.ManagerUserID) {
		errs.Add("managerUserId", "managerUserId must be a valid UUID")
	}

	return errs.Err()
}

// UpdateBranchRequest represents the request structure for updating a branch.
// ClearManager removes the current manager assignment.
type UpdateBranchRequest struct {
	ID            string  `json:"-"`
	Name          *string `json:"name,omitempty"`
	Address       *string `json:"address,omitempty"`
	ManagerUserID *string `json:"managerUserId,omitempty"`
	ClearManager  bool    `json:"clearManager,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		}
		if len(*r.Name) > 100 {
			errs.Add("name", "name must not exceed 100 characters")
		}
	}
	if r.ManagerUserID != nil && !validator.IsValidUUID(*r.ManagerUserID) {
		errs.Add("managerUserId", "managerUserId must be a valid UUID")
	}
	if r.ManagerUserID != nil && r.ClearManager {
		errs.Add("clearManager", "clearManager cannot be combined with managerUserId")
	}

	return errs.Err()
}
