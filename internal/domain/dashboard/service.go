package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetAdminDashboard runs the aggregate queries in parallel and caches the result
	GetAdminDashboard(ctx context.Context) (AdminDashboardResponse, error)

	// GetEmployeeDashboard returns the caller's balances, recent requests and latest payslip
	GetEmployeeDashboard(ctx context.Context) (EmployeeDashboardResponse, error)
}
