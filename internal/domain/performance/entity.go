package performance

import "time"

type ReviewStatus string

const (
	ReviewStatusDraft        ReviewStatus = "DRAFT"
	ReviewStatusSubmitted    ReviewStatus = "SUBMITTED"
	ReviewStatusAcknowledged ReviewStatus = "ACKNOWLEDGED"
)

func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewStatusDraft, ReviewStatusSubmitted, ReviewStatusAcknowledged:
		return true
	}
	return false
}

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID             string
	TenantID       string
	EmployeeID     string
	ReviewerID     string // user id
	Period         string // 2025-Q1, 2025-H2, 2025-FY
	Rating         int
	Goals          *string
	Comments       *string
	Status         ReviewStatus
	SubmittedAt    *time.Time
	AcknowledgedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName *string
	ReviewerName *string
}

// Editable reports whether the review content may still change.
func (r Review) Editable() bool {
	return r.Status == ReviewStatusDraft
}
