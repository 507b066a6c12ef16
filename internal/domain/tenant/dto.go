package tenant

import (
	"regexp"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsDemo    bool      `json:"isDemo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToResponse(t Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		IsDemo:    t.IsDemo,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

type UpdateTenantRequest struct {
	Name string `json:"name"`
}

func (r *UpdateTenantRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	return errs.Err()
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// OnboardRequest creates a tenant with its first administrator.
type OnboardRequest struct {
	Name          string
	Slug          string
	AdminEmail    string
	AdminPassword string
}

func (r *OnboardRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if !slugRegex.MatchString(r.Slug) || len(r.Slug) > 100 {
		errs.Add("slug", "slug must be lowercase letters, digits and dashes")
	}
	if !validator.IsValidEmail(r.AdminEmail) {
		errs.Add("adminEmail", "invalid email format")
	}
	if validator.IsEmpty(r.AdminPassword) {
		errs.Add("adminPassword", "adminPassword is required")
	}

	return errs.Err()
}

type OnboardResult struct {
	Tenant      Tenant
	AdminUserID string
	BranchID    string
	LeaveTypes  int
}
