package employee

import "context"

type EmployeeService interface {
	// ListEmployees lists employees with filters
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// GetEmployee retrieves a single employee; employees may only read themselves
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates an employee and seeds current-year leave balances
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// TerminateEmployee sets employment_status to TERMINATED
	TerminateEmployee(ctx context.Context, id string) error
}

// BalanceInitializer seeds leave balances for a new employee.
type BalanceInitializer interface {
	InitializeBalances(ctx context.Context, tenantID, employeeID string, year int) error
}
