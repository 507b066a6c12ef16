package performance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type ReviewResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	EmployeeName   *string    `json:"employeeName,omitempty"`
	ReviewerID     string     `json:"reviewerId"`
	ReviewerName   *string    `json:"reviewerName,omitempty"`
	Period         string     `json:"period"`
	Rating         int        `json:"rating"`
	Goals          *string    `json:"goals,omitempty"`
	Comments       *string    `json:"comments,omitempty"`
	Status         string     `json:"status"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func ToResponse(r Review) ReviewResponse {
	return ReviewResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		ReviewerID:     r.ReviewerID,
		ReviewerName:   r.ReviewerName,
		Period:         r.Period,
		Rating:         r.Rating,
		Goals:          r.Goals,
		Comments:       r.Comments,
		Status:         string(r.Status),
		SubmittedAt:    r.SubmittedAt,
		AcknowledgedAt: r.AcknowledgedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type ListReviewResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

type ReviewFilter struct {
	EmployeeID *string
	ReviewerID *string
	Period     *string
	Status     *string
	Page       int
	Limit      int

	// ExcludeDrafts hides reviews the reviewer has not submitted yet.
	ExcludeDrafts bool
}

func (f *ReviewFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !ReviewStatus(*f.Status).IsValid() {
		errs.Add("status", "status must be DRAFT, SUBMITTED or ACKNOWLEDGED")
	}
	if f.Period != nil && !validator.IsValidReviewPeriod(*f.Period) {
		errs.Add("period", "period must look like 2025-Q1, 2025-H1 or 2025-FY")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	return errs.Err()
}

type CreateReviewRequest struct {
	EmployeeID string  `json:"employeeId" validate:"required"`
	Period     string  `json:"period" validate:"required"`
	Rating     int     `json:"rating" validate:"gte=1,lte=5"`
	Goals      *string `json:"goals,omitempty" validate:"omitempty,max=2000"`
	Comments   *string `json:"comments,omitempty" validate:"omitempty,max=2000"`
}

func (r *CreateReviewRequest) Validate() error {
	r.Period = strings.ToUpper(strings.TrimSpace(r.Period))
	errs := validator.Struct(r)

	if r.Period != "" && !validator.IsValidReviewPeriod(r.Period) {
		errs.Add("period", "period must look like 2025-Q1, 2025-H1 or 2025-FY")
	}

	return errs.Err()
}

type UpdateReviewRequest struct {
	ID       string  `json:"-"`
	Rating   *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Goals    *string `json:"goals,omitempty" validate:"omitempty,max=2000"`
	Comments *string `json:"comments,omitempty" validate:"omitempty,max=2000"`
}

func (r *UpdateReviewRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Rating == nil && r.Goals == nil && r.Comments == nil {
		errs.Add("body", "at least one field must be provided")
	}

	return errs.Err()
}

// Apply copies the provided fields onto the review.
func (r UpdateReviewRequest) Apply(review *Review) {
	if r.Rating != nil {
		review.Rating = *r.Rating
	}
	if r.Goals != nil {
		review.Goals = r.Goals
	}
	if r.Comments != nil {
		review.Comments = r.Comments
	}
}
