package dashboard

import (
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// ========== ADMIN DASHBOARD ==========

// AdminDashboardResponse is the combined response for the admin dashboard endpoint
type AdminDashboardResponse struct {
	Headcount    HeadcountResponse    `json:"headcount"`
	Leave        LeaveStatsResponse   `json:"leave"`
	Departments  []GroupCount         `json:"byDepartment"`
	Branches     []GroupCount         `json:"byBranch"`
	Payroll      PayrollStatsResponse `json:"payroll"`
	Performance  PerformanceResponse  `json:"performance"`
	GeneratedAt  string               `json:"generatedAt"`
	CacheVersion int64                `json:"cacheVersion"`
}

// HeadcountResponse contains employee counts by employment status
type HeadcountResponse struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	OnLeave    int64 `json:"onLeave"`
	Terminated int64 `json:"terminated"`
	NewHires   int64 `json:"newHires"` // hired within 30 days
}

// LeaveStatsResponse summarizes leave activity
type LeaveStatsResponse struct {
	OnLeaveToday      int64        `json:"onLeaveToday"`
	PendingRequests   int64        `json:"pendingRequests"`
	ApprovedDaysMonth int64        `json:"approvedDaysThisMonth"`
	DaysByType        []GroupCount `json:"daysByType"`
	Month             string       `json:"month"` // Format: "YYYY-MM"
}

// GroupCount is one bar of a grouped chart.
type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// PayrollStatsResponse summarizes payroll for the current month
type PayrollStatsResponse struct {
	Records             int64           `json:"records"`
	TotalNetPay         decimal.Decimal `json:"totalNetPay"`
	TotalTax            decimal.Decimal `json:"totalTax"`
	OutstandingAdvances decimal.Decimal `json:"outstandingAdvances"`
	Month               string          `json:"month"`
}

type PerformanceResponse struct {
	AverageRating float64 `json:"averageRating"`
	Reviews       int64   `json:"reviews"`
}

// ========== EMPLOYEE DASHBOARD ==========

// EmployeeDashboardResponse is the caller's self-service overview
type EmployeeDashboardResponse struct {
	EmployeeID     string                       `json:"employeeId"`
	FullName       string                       `json:"fullName"`
	Year           int                          `json:"year"`
	Balances       []leave.LeaveBalanceResponse `json:"balances"`
	RecentRequests []leave.LeaveRequestResponse `json:"recentRequests"`
	LatestPayslip  *PayslipSummary              `json:"latestPayslip,omitempty"`
}

type PayslipSummary struct {
	RecordID    string          `json:"recordId"`
	PeriodMonth int             `json:"periodMonth"`
	PeriodYear  int             `json:"periodYear"`
	NetPay      decimal.Decimal `json:"netPay"`
	Status      string          `json:"status"`
}
