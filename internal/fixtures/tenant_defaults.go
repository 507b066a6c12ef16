package fixtures

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
)

func strPtr(s string) *string { return &s }

// ==========================================
// SEEDED DATA RESULT
// ==========================================

// SeededDataIDs holds IDs of the default data created for a tenant
type SeededDataIDs struct {
	BranchID      string
	DepartmentIDs map[string]string // e.g., "Human Resources" -> "uuid"
	LeaveTypeIDs  map[string]string // e.g., "ANNUAL" -> "uuid"
	PolicyIDs     map[string]string // leave type code -> policy id
}

func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		DepartmentIDs: make(map[string]string),
		LeaveTypeIDs:  make(map[string]string),
		PolicyIDs:     make(map[string]string),
	}
}

// ==========================================
// DEFAULT BRANCH AND DEPARTMENTS
// ==========================================

// GetDefaultBranch returns the headquarters branch of a new tenant
func GetDefaultBranch(tenantID, tenantName string) branch.Branch {
	return branch.Branch{
		TenantID: tenantID,
		Name:     "Headquarters",
		Code:     "HQ",
		Address:  strPtr(tenantName + " - Main Office"),
	}
}

func GetDefaultDepartments(tenantID string) []department.Department {
	names := []string{"Human Resources", "Finance", "Operations", "Engineering", "Sales"}
	out := make([]department.Department, 0, len(names))
	for _, name := range names {
		out = append(out, department.Department{TenantID: tenantID, Name: name})
	}
	return out
}

// ==========================================
// DEFAULT LEAVE TYPES
// ==========================================

// DefaultLeaveType pairs a leave type with the policy it starts with.
type DefaultLeaveType struct {
	Type   leave.LeaveType
	Policy leave.LeavePolicy
}

// GetDefaultLeaveTypes returns leave types and policies based on Indonesian labor law.
// Policies take effect on January 1st of effectiveYear.
func GetDefaultLeaveTypes(tenantID string, effectiveYear int) []DefaultLeaveType {
	effective := time.Date(effectiveYear, time.January, 1, 0, 0, 0, 0, time.UTC)

	policy := func(p leave.LeavePolicy) leave.LeavePolicy {
		p.TenantID = tenantID
		p.IsActive = true
		p.EffectiveDate = effective
		return p
	}

	return []DefaultLeaveType{
		// Annual Leave (Cuti Tahunan) - 12 days per year, accrued monthly, 6 days carry forward
		{
			Type: leave.LeaveType{TenantID: tenantID, Name: "Cuti Tahunan", Code: "ANNUAL", Color: strPtr("#4CAF50"), IsActive: true},
			Policy: policy(leave.LeavePolicy{
				MaxDaysPerYear:      12,
				AccrualRate:         1,
				MaxCarryForward:     6,
				ProbationPeriodDays: 90,
				MinDaysNotice:       3,
				MaxDaysPerRequest:   12,
			}),
		},

		// Sick Leave (Cuti Sakit)
		{
			Type: leave.LeaveType{TenantID: tenantID, Name: "Cuti Sakit", Code: "SICK", Color: strPtr("#F44336"), IsActive: true},
			Policy: policy(leave.LeavePolicy{
				MaxDaysPerYear:    14,
				MaxDaysPerRequest: 14,
			}),
		},

		// Marriage Leave (Cuti Menikah) - 3 days
		{
			Type: leave.LeaveType{TenantID: tenantID, Name: "Cuti Menikah", Code: "MARRIAGE", Color: strPtr("#E91E63"), IsActive: true},
			Policy: policy(leave.LeavePolicy{
				MaxDaysPerYear:    3,
				MinDaysNotice:     7,
				MaxDaysPerRequest: 3,
			}),
		},

		// Maternity Leave (Cuti Melahirkan) - 3 months
		{
			Type: leave.LeaveType{TenantID: tenantID, Name: "Cuti Melahirkan", Code: "MATERNITY", Color: strPtr("#9C27B0"), IsActive: true},
			Policy: policy(leave.LeavePolicy{
				MaxDaysPerYear:    65, // 3 months of working days
				MinDaysNotice:     14,
				MaxDaysPerRequest: 65,
			}),
		},

		// Paternity Leave (Cuti Ayah) - 2 days
		{
			Type: leave.LeaveType{TenantID: tenantID, Name: "Cuti Ayah", Code: "PATERNITY", Color: strPtr("#3F51B5"), IsActive: true},
			Policy: policy(leave.LeavePolicy{
				MaxDaysPerYear:    2,
				MaxDaysPerRequest: 2,
			}),
		},

		// Bereavement Leave (Cuti Duka) - 2 days
		{
			Type: leave.LeaveType{TenantID: tenantID, Name: "Cuti Duka", Code: "BEREAVEMENT", Color: strPtr("#607D8B"), IsActive: true},
			Policy: policy(leave.LeavePolicy{
				MaxDaysPerYear:    2,
				MaxDaysPerRequest: 2,
			}),
		},

		// Unpaid Leave (Cuti Tanpa Gaji) may go negative, it is not funded by an allocation
		{
			Type: leave.LeaveType{TenantID: tenantID, Name: "Cuti Tanpa Gaji", Code: "UNPAID", Color: strPtr("#795548"), IsActive: true},
			Policy: policy(leave.LeavePolicy{
				MinDaysNotice:        7,
				MaxDaysPerRequest:    30,
				AllowNegativeBalance: true,
			}),
		},
	}
}
