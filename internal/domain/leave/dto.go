package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type LeaveTypeResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	Color    *string `json:"color,omitempty"`
	IsActive bool    `json:"isActive"`
}

func ToLeaveTypeResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{ID: t.ID, Name: t.Name, Code: t.Code, Color: t.Color, IsActive: t.IsActive}
}

type CreateLeaveTypeRequest struct {
	Name  string  `json:"name"`
	Code  string  `json:"code"`
	Color *string `json:"color,omitempty"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}
	if validator.IsEmpty(r.Code) {
		errs.Add("code", "code is required")
	} else if len(r.Code) > 20 {
		errs.Add("code", "code must not exceed 20 characters")
	}
	if r.Color != nil {
		errs = append(errs, validator.Struct(struct {
			Color string `json:"color" validate:"hexcolor"`
		}{*r.Color})...)
	}

	return errs.Err()
}

type UpdateLeaveTypeRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Color    *string `json:"color,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		}
		if len(*r.Name) > 255 {
			errs.Add("name", "name must not exceed 255 characters")
		}
	}
	if r.Color != nil {
		errs = append(errs, validator.Struct(struct {
			Color string `json:"color" validate:"hexcolor"`
		}{*r.Color})...)
	}

	return errs.Err()
}

type LeavePolicyResponse struct {
	ID                   string  `json:"id"`
	LeaveTypeID          string  `json:"leaveTypeId"`
	MaxDaysPerYear       int     `json:"maxDaysPerYear"`
	AccrualRate          float64 `json:"accrualRate"`
	MaxCarryForward      int     `json:"maxCarryForward"`
	ProbationPeriodDays  int     `json:"probationPeriodDays"`
	MinDaysNotice        int     `json:"minDaysNotice"`
	MaxDaysPerRequest    int     `json:"maxDaysPerRequest"`
	AllowNegativeBalance bool    `json:"allowNegativeBalance"`
	IsActive             bool    `json:"isActive"`
	EffectiveDate        string  `json:"effectiveDate"`
	ExpiryDate           *string `json:"expiryDate,omitempty"`
}

func ToLeavePolicyResponse(p LeavePolicy) LeavePolicyResponse {
	resp := LeavePolicyResponse{
		ID:                   p.ID,
		LeaveTypeID:          p.LeaveTypeID,
		MaxDaysPerYear:       p.MaxDaysPerYear,
		AccrualRate:          p.AccrualRate,
		MaxCarryForward:      p.MaxCarryForward,
		ProbationPeriodDays:  p.ProbationPeriodDays,
		MinDaysNotice:        p.MinDaysNotice,
		MaxDaysPerRequest:    p.MaxDaysPerRequest,
		AllowNegativeBalance: p.AllowNegativeBalance,
		IsActive:             p.IsActive,
		EffectiveDate:        p.EffectiveDate.Format(dateLayout),
	}
	if p.ExpiryDate != nil {
		expiry := p.ExpiryDate.Format(dateLayout)
		resp.ExpiryDate = &expiry
	}
	return resp
}

type CreateLeavePolicyRequest struct {
	LeaveTypeID          string  `json:"leaveTypeId"`
	MaxDaysPerYear       int     `json:"maxDaysPerYear" validate:"gte=0,lte=366"`
	AccrualRate          float64 `json:"accrualRate" validate:"gte=0,lte=31"`
	MaxCarryForward      int     `json:"maxCarryForward" validate:"gte=0"`
	ProbationPeriodDays  int     `json:"probationPeriodDays" validate:"gte=0"`
	MinDaysNotice        int     `json:"minDaysNotice" validate:"gte=0"`
	MaxDaysPerRequest    int     `json:"maxDaysPerRequest" validate:"gte=0"`
	AllowNegativeBalance bool    `json:"allowNegativeBalance"`
	EffectiveDate        string  `json:"effectiveDate"`
	ExpiryDate           *string `json:"expiryDate,omitempty"`

	// Parsed by Validate
	Effective time.Time  `json:"-"`
	Expiry    *time.Time `json:"-"`
}

func (r *CreateLeavePolicyRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.LeaveTypeID) {
		errs.Add("leaveTypeId", "leaveTypeId is required")
	}
	parsePolicyDates(&errs, r.EffectiveDate, r.ExpiryDate, &r.Effective, &r.Expiry)

	return errs.Err()
}

type UpdateLeavePolicyRequest struct {
	ID                   string   `json:"-"`
	MaxDaysPerYear       *int     `json:"maxDaysPerYear,omitempty" validate:"omitempty,gte=0,lte=366"`
	AccrualRate          *float64 `json:"accrualRate,omitempty" validate:"omitempty,gte=0,lte=31"`
	MaxCarryForward      *int     `json:"maxCarryForward,omitempty" validate:"omitempty,gte=0"`
	ProbationPeriodDays  *int     `json:"probationPeriodDays,omitempty" validate:"omitempty,gte=0"`
	MinDaysNotice        *int     `json:"minDaysNotice,omitempty" validate:"omitempty,gte=0"`
	MaxDaysPerRequest    *int     `json:"maxDaysPerRequest,omitempty" validate:"omitempty,gte=0"`
	AllowNegativeBalance *bool    `json:"allowNegativeBalance,omitempty"`
	IsActive             *bool    `json:"isActive,omitempty"`
	ExpiryDate           *string  `json:"expiryDate,omitempty"`

	Expiry *time.Time `json:"-"`
}

func (r *UpdateLeavePolicyRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.ExpiryDate != nil {
		if t, ok := validator.IsValidDate(*r.ExpiryDate); ok {
			r.Expiry = &t
		} else {
			errs.Add("expiryDate", "expiryDate must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

// Apply copies the set fields onto p.
func (r *UpdateLeavePolicyRequest) Apply(p *LeavePolicy) {
	if r.MaxDaysPerYear != nil {
		p.MaxDaysPerYear = *r.MaxDaysPerYear
	}
	if r.AccrualRate != nil {
		p.AccrualRate = *r.AccrualRate
	}
	if r.MaxCarryForward != nil {
		p.MaxCarryForward = *r.MaxCarryForward
	}
	if r.ProbationPeriodDays != nil {
		p.ProbationPeriodDays = *r.ProbationPeriodDays
	}
	if r.MinDaysNotice != nil {
		p.MinDaysNotice = *r.MinDaysNotice
	}
	if r.MaxDaysPerRequest != nil {
		p.MaxDaysPerRequest = *r.MaxDaysPerRequest
	}
	if r.AllowNegativeBalance != nil {
		p.AllowNegativeBalance = *r.AllowNegativeBalance
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.Expiry != nil {
		p.ExpiryDate = r.Expiry
	}
}

func parsePolicyDates(errs *validator.ValidationErrors, effective string, expiry *string, outEffective *time.Time, outExpiry **time.Time) {
	if validator.IsEmpty(effective) {
		errs.Add("effectiveDate", "effectiveDate is required")
	} else if t, ok := validator.IsValidDate(effective); ok {
		*outEffective = t
	} else {
		errs.Add("effectiveDate", "effectiveDate must be in YYYY-MM-DD format")
	}

	if expiry == nil {
		return
	}
	t, ok := validator.IsValidDate(*expiry)
	if !ok {
		errs.Add("expiryDate", "expiryDate must be in YYYY-MM-DD format")
		return
	}
	if !outEffective.IsZero() && t.Before(*outEffective) {
		errs.Add("expiryDate", "expiryDate must not be before effectiveDate")
	}
	*outExpiry = &t
}

type LeaveBalanceResponse struct {
	LeaveTypeID    string  `json:"leaveTypeId"`
	LeaveTypeName  *string `json:"leaveTypeName,omitempty"`
	LeaveTypeCode  *string `json:"leaveTypeCode,omitempty"`
	Year           int     `json:"year"`
	Allocated      int     `json:"allocated"`
	Accrued        int     `json:"accrued"`
	CarriedForward int     `json:"carriedForward"`
	Used           int     `json:"used"`
	Pending        int     `json:"pending"`
	Available      int     `json:"available"`
}

func ToLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		LeaveTypeID:    b.LeaveTypeID,
		LeaveTypeName:  b.LeaveTypeName,
		LeaveTypeCode:  b.LeaveTypeCode,
		Year:           b.Year,
		Allocated:      b.Allocated,
		Accrued:        b.Accrued,
		CarriedForward: b.CarriedForward,
		Used:           b.Used,
		Pending:        b.Pending,
		Available:      b.Available,
	}
}

type SubmitLeaveRequestRequest struct {
	EmployeeID  string `json:"employeeId"`
	LeaveTypeID string `json:"leaveTypeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *SubmitLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs.Add("leaveTypeId", "leaveTypeId is required")
	}

	var startOK, endOK bool
	if validator.IsEmpty(r.StartDate) {
		errs.Add("startDate", "startDate is required")
	} else if r.Start, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs.Add("startDate", "startDate must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.EndDate) {
		errs.Add("endDate", "endDate is required")
	} else if r.End, endOK = validator.IsValidDate(r.EndDate); !endOK {
		errs.Add("endDate", "endDate must be in YYYY-MM-DD format")
	}
	if startOK && endOK && r.End.Before(r.Start) {
		errs.Add("endDate", "endDate must not be before startDate")
	}

	if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

type DecisionRequest struct {
	RequestID string `json:"-"`
	Decision  string `json:"decision"`
	Reason    string `json:"reason,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs.Add("id", "id is required")
	}
	if !Decision(strings.ToUpper(r.Decision)).IsValid() {
		errs.Add("decision", "decision must be APPROVED or REJECTED")
	}
	r.Decision = strings.ToUpper(r.Decision)

	return errs.Err()
}

type LeaveRequestFilter struct {
	EmployeeID  *string
	Status      *string
	LeaveTypeID *string
	StartDate   *string
	EndDate     *string
	BranchID    *string
	ApproverID  *string
	Page        int
	Limit       int
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !LeaveRequestStatus(*f.Status).IsValid() {
		errs.Add("status", "status must be PENDING, APPROVED or REJECTED")
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("startDate", "startDate must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("endDate", "endDate must be in YYYY-MM-DD format")
		}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	return errs.Err()
}

type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employeeId"`
	EmployeeName    *string    `json:"employeeName,omitempty"`
	LeaveTypeID     string     `json:"leaveTypeId"`
	LeaveTypeName   *string    `json:"leaveTypeName,omitempty"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	TotalDays       int        `json:"totalDays"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ApproverID      *string    `json:"approverId,omitempty"`
	ApproverRole    *string    `json:"approverRole,omitempty"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedBy      *string    `json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func ToLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		LeaveTypeID:     r.LeaveTypeID,
		LeaveTypeName:   r.LeaveTypeName,
		StartDate:       r.StartDate.Format(dateLayout),
		EndDate:         r.EndDate.Format(dateLayout),
		TotalDays:       r.TotalDays,
		Reason:          r.Reason,
		Status:          string(r.Status),
		ApproverID:      r.ApproverID,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectedBy:      r.RejectedBy,
		RejectedAt:      r.RejectedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.ApproverRole != nil {
		role := string(*r.ApproverRole)
		resp.ApproverRole = &role
	}
	return resp
}

type ListLeaveRequestResponse struct {
	Requests   []LeaveRequestResponse `json:"requests"`
	TotalCount int64                  `json:"totalCount"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

// SubmitLeaveResponse is returned on a successful submission.
type SubmitLeaveResponse struct {
	Request LeaveRequestResponse `json:"request"`
	Balance LeaveBalanceResponse `json:"balance"`
}

type HolidayResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	IsActive bool   `json:"isActive"`
}

func ToHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{ID: h.ID, Name: h.Name, Date: h.Date.Format(dateLayout), IsActive: h.IsActive}
}

type CreateHolidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`

	Parsed time.Time `json:"-"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if t, ok := validator.IsValidDate(r.Date); ok {
		r.Parsed = t
	} else {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	return errs.Err()
}

// ValidationResult is the outcome of checking a prospective request against policy.
type ValidationResult struct {
	IsValid   bool     `json:"isValid"`
	Errors    []string `json:"errors"`
	TotalDays int      `json:"totalDays"`
}
