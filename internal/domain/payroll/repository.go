package payroll

import "context"

// PayrollRepository defines data access methods for payroll.
// All methods include tenantID to prevent cross-tenant data access.
type PayrollRepository interface {
	// Payroll Records
	CreateRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetRecordByID(ctx context.Context, tenantID, id string) (PayrollRecord, error)
	ExistsForPeriod(ctx context.Context, tenantID, employeeID string, month, year int) (bool, error)
	ListRecords(ctx context.Context, tenantID string, filter PayrollFilter) ([]PayrollRecord, int64, error)
	UpdateRecordStatus(ctx context.Context, record PayrollRecord) error
	LatestForEmployee(ctx context.Context, tenantID, employeeID string) (PayrollRecord, error)

	// Salary Advances
	CreateAdvance(ctx context.Context, advance SalaryAdvance) (SalaryAdvance, error)
	GetAdvanceByID(ctx context.Context, tenantID, id string) (SalaryAdvance, error)
	ListAdvances(ctx context.Context, tenantID string, filter AdvanceFilter) ([]SalaryAdvance, int64, error)
	ListApprovedAdvances(ctx context.Context, tenantID, employeeID string) ([]SalaryAdvance, error)
	HasOutstandingAdvance(ctx context.Context, tenantID, employeeID string) (bool, error)
	UpdateAdvanceDecision(ctx context.Context, advance SalaryAdvance) error
	MarkAdvancesRepaid(ctx context.Context, tenantID string, ids []string, recordID string) error
}
