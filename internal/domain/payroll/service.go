package payroll

import "context"

type PayrollService interface {
	ListRecords(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	CreateRecord(ctx context.Context, req CreatePayrollRecordRequest) (PayrollRecordResponse, error)
	UpdateStatus(ctx context.Context, req UpdatePayrollStatusRequest) (PayrollRecordResponse, error)
	Payslip(ctx context.Context, id string) ([]byte, string, error)

	RequestAdvance(ctx context.Context, req CreateAdvanceRequest) (SalaryAdvanceResponse, error)
	ListAdvances(ctx context.Context, filter AdvanceFilter) (ListAdvanceResponse, error)
	DecideAdvance(ctx context.Context, req DecideAdvanceRequest) (SalaryAdvanceResponse, error)
}
