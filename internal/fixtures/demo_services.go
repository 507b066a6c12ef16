package fixtures

import (
	"context"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
	"github.com/shopspring/decimal"
)

// demoEpoch anchors fixture timestamps so responses are stable between calls.
var demoEpoch = time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)

type demoPerson struct {
	userID, employeeID, code, name, email, position, department, branch string
	role                                                               user.Role
	salary                                                             int64
}

var demoPeople = []demoPerson{
	{DemoUserID, DemoEmployeeID, "EMP-001", "Dewi Lestari", DemoEmail, "HR Director", "Human Resources", "Jakarta HQ", user.RoleAdmin, 25000000},
	{"018f2a00-0000-7000-8000-000000000012", "018f2a00-0000-7000-8000-000000000013", "EMP-002", "Budi Santoso", "budi@hrms.local", "HR Generalist", "Human Resources", "Jakarta HQ", user.RoleHR, 12000000},
	{"018f2a00-0000-7000-8000-000000000022", "018f2a00-0000-7000-8000-000000000023", "EMP-003", "Sari Wijaya", "sari@hrms.local", "Branch Manager", "Operations", "Surabaya", user.RoleBranchManager, 18000000},
	{"018f2a00-0000-7000-8000-000000000032", "018f2a00-0000-7000-8000-000000000033", "EMP-004", "Agus Pratama", "agus@hrms.local", "Operations Manager", "Operations", "Jakarta HQ", user.RoleOpsManager, 20000000},
	{"018f2a00-0000-7000-8000-000000000042", "018f2a00-0000-7000-8000-000000000043", "EMP-005", "Rina Kusuma", "rina@hrms.local", "Software Engineer", "Engineering", "Surabaya", user.RoleEmployee, 15000000},
	{"018f2a00-0000-7000-8000-000000000052", "018f2a00-0000-7000-8000-000000000053", "EMP-006", "Eko Saputra", "eko@hrms.local", "Sales Executive", "Sales", "Surabaya", user.RoleEmployee, 9000000},
}

// ========== DASHBOARD ==========

type DemoDashboardService struct {
	now func() time.Time
}

func NewDemoDashboardService() *DemoDashboardService {
	return &DemoDashboardService{now: time.Now}
}

func (s *DemoDashboardService) GetAdminDashboard(context.Context) (dashboard.AdminDashboardResponse, error) {
	month := s.now().Format("2006-01")
	return dashboard.AdminDashboardResponse{
		Headcount: dashboard.HeadcountResponse{Total: 6, Active: 5, OnLeave: 1, NewHires: 1},
		Leave: dashboard.LeaveStatsResponse{
			OnLeaveToday:      1,
			PendingRequests:   2,
			ApprovedDaysMonth: 9,
			DaysByType: []dashboard.GroupCount{
				{Label: "Cuti Tahunan", Count: 6},
				{Label: "Cuti Sakit", Count: 3},
			},
			Month: month,
		},
		Departments: []dashboard.GroupCount{
			{Label: "Engineering", Count: 1},
			{Label: "Human Resources", Count: 2},
			{Label: "Operations", Count: 2},
			{Label: "Sales", Count: 1},
		},
		Branches: []dashboard.GroupCount{
			{Label: "Jakarta HQ", Count: 3},
			{Label: "Surabaya", Count: 3},
		},
		Payroll: dashboard.PayrollStatsResponse{
			Records:             6,
			TotalNetPay:         decimal.NewFromInt(94050000),
			TotalTax:            decimal.NewFromInt(4950000),
			OutstandingAdvances: decimal.NewFromInt(2500000),
			Month:               month,
		},
		Performance: dashboard.PerformanceResponse{AverageRating: 4.2, Reviews: 5},
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *DemoDashboardService) GetEmployeeDashboard(context.Context) (dashboard.EmployeeDashboardResponse, error) {
	year := s.now().Year()
	annual, sick := "Cuti Tahunan", "Cuti Sakit"
	return dashboard.EmployeeDashboardResponse{
		EmployeeID: DemoEmployeeID,
		FullName:   demoPeople[0].name,
		Year:       year,
		Balances: []leave.LeaveBalanceResponse{
			{LeaveTypeID: "demo-annual", LeaveTypeName: &annual, Year: year, Allocated: 12, CarriedForward: 2, Accrued: 3, Used: 2, Available: 3},
			{LeaveTypeID: "demo-sick", LeaveTypeName: &sick, Year: year, Allocated: 14, Used: 1, Available: 13},
		},
		RecentRequests: []leave.LeaveRequestResponse{},
		LatestPayslip: &dashboard.PayslipSummary{
			RecordID:    "demo-payslip",
			PeriodMonth: int(s.now().Month()),
			PeriodYear:  year,
			NetPay:      decimal.NewFromInt(23750000),
			Status:      "PROCESSED",
		},
	}, nil
}

// ========== USERS ==========

type DemoUserService struct{}

func toDemoUser(p demoPerson) user.UserResponse {
	employeeID := p.employeeID
	return user.UserResponse{
		ID:         p.userID,
		TenantID:   DemoTenantID,
		Email:      p.email,
		Role:       string(p.role),
		IsActive:   true,
		EmployeeID: &employeeID,
		CreatedAt:  demoEpoch,
		UpdatedAt:  demoEpoch,
	}
}

func (DemoUserService) List(_ context.Context, filter user.UserFilter) ([]user.UserResponse, int64, error) {
	out := make([]user.UserResponse, 0, len(demoPeople))
	for _, p := range demoPeople {
		if filter.Role != nil && string(p.role) != *filter.Role {
			continue
		}
		if filter.Search != nil && !strings.Contains(p.email, strings.ToLower(*filter.Search)) {
			continue
		}
		out = append(out, toDemoUser(p))
	}
	return out, int64(len(out)), nil
}

func (DemoUserService) Get(_ context.Context, id string) (user.UserResponse, error) {
	for _, p := range demoPeople {
		if p.userID == id {
			return toDemoUser(p), nil
		}
	}
	return user.UserResponse{}, user.ErrUserNotFound
}

func (DemoUserService) Create(context.Context, user.CreateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{}, demo.ErrDemoReadOnly
}

func (DemoUserService) UpdateRole(context.Context, user.UpdateUserRoleRequest) error {
	return demo.ErrDemoReadOnly
}

func (DemoUserService) UpdateStatus(context.Context, user.UpdateUserStatusRequest) error {
	return demo.ErrDemoReadOnly
}

// ========== SECURITY SETTINGS ==========

type DemoSettingsService struct{}

func (DemoSettingsService) GetSecurity(context.Context) (settings.SecuritySettingsResponse, error) {
	s := settings.Defaults(DemoTenantID)
	s.RequireMFA = true
	return settings.ToResponse(s), nil
}

func (DemoSettingsService) UpdateSecurity(context.Context, settings.UpdateSecuritySettingsRequest) (settings.SecuritySettingsResponse, error) {
	return settings.SecuritySettingsResponse{}, demo.ErrDemoReadOnly
}

// ========== EMPLOYEES ==========

type DemoEmployeeService struct{}

func toDemoEmployee(p demoPerson) employee.EmployeeResponse {
	userID, department, branch := p.userID, p.department, p.branch
	return employee.EmployeeResponse{
		ID:               p.employeeID,
		UserID:           &userID,
		EmployeeCode:     p.code,
		FullName:         p.name,
		Email:            p.email,
		Position:         p.position,
		DepartmentName:   &department,
		BranchName:       &branch,
		HireDate:         demoEpoch.Format("2006-01-02"),
		EmploymentStatus: string(employee.EmploymentStatusActive),
		BaseSalary:       decimal.NewFromInt(p.salary),
		CreatedAt:        demoEpoch,
		UpdatedAt:        demoEpoch,
	}
}

func (DemoEmployeeService) ListEmployees(_ context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	matched := make([]employee.EmployeeResponse, 0, len(demoPeople))
	for _, p := range demoPeople {
		if filter.Search != nil && !strings.Contains(strings.ToLower(p.name), strings.ToLower(*filter.Search)) {
			continue
		}
		matched = append(matched, toDemoEmployee(p))
	}

	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+filter.Limit, len(matched))

	return employee.ListEmployeeResponse{
		Employees:  matched[start:end],
		TotalCount: int64(len(matched)),
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (DemoEmployeeService) GetEmployee(_ context.Context, id string) (employee.EmployeeResponse, error) {
	for _, p := range demoPeople {
		if p.employeeID == id {
			return toDemoEmployee(p), nil
		}
	}
	return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
}

func (DemoEmployeeService) CreateEmployee(context.Context, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, demo.ErrDemoReadOnly
}

func (DemoEmployeeService) UpdateEmployee(context.Context, employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, demo.ErrDemoReadOnly
}

func (DemoEmployeeService) TerminateEmployee(context.Context, string) error {
	return demo.ErrDemoReadOnly
}

var (
	_ dashboard.DashboardService = (*DemoDashboardService)(nil)
	_ user.UserService           = DemoUserService{}
	_ settings.SettingsService   = DemoSettingsService{}
	_ employee.EmployeeService   = DemoEmployeeService{}
)
