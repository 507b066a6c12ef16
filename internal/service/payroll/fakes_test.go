package payroll

import (
	"context"
	"fmt"
	"sync"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/tenant"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/email"
)

type memPayroll struct {
	payroll.PayrollRepository
	records  map[string]payroll.PayrollRecord
	advances map[string]payroll.SalaryAdvance
	order    []string
	seq      int
}

func newMemPayroll() *memPayroll {
	return &memPayroll{records: map[string]payroll.PayrollRecord{}, advances: map[string]payroll.SalaryAdvance{}}
}

func (m *memPayroll) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memPayroll) CreateRecord(_ context.Context, r payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.ID = m.nextID("pr")
	m.records[r.ID] = r
	return r, nil
}

func (m *memPayroll) GetRecordByID(_ context.Context, tenantID, id string) (payroll.PayrollRecord, error) {
	r, ok := m.records[id]
	if !ok || r.TenantID != tenantID {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func (m *memPayroll) ExistsForPeriod(_ context.Context, tenantID, employeeID string, month, year int) (bool, error) {
	for _, r := range m.records {
		if r.TenantID == tenantID && r.EmployeeID == employeeID && r.PeriodMonth == month && r.PeriodYear == year {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPayroll) ListRecords(_ context.Context, tenantID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	var out []payroll.PayrollRecord
	for _, r := range m.records {
		if r.TenantID != tenantID {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *memPayroll) UpdateRecordStatus(_ context.Context, r payroll.PayrollRecord) error {
	m.records[r.ID] = r
	return nil
}

func (m *memPayroll) addAdvance(a payroll.SalaryAdvance) payroll.SalaryAdvance {
	a.ID = m.nextID("adv")
	m.advances[a.ID] = a
	m.order = append(m.order, a.ID)
	return a
}

func (m *memPayroll) CreateAdvance(_ context.Context, a payroll.SalaryAdvance) (payroll.SalaryAdvance, error) {
	return m.addAdvance(a), nil
}

func (m *memPayroll) GetAdvanceByID(_ context.Context, tenantID, id string) (payroll.SalaryAdvance, error) {
	a, ok := m.advances[id]
	if !ok || a.TenantID != tenantID {
		return payroll.SalaryAdvance{}, payroll.ErrAdvanceNotFound
	}
	return a, nil
}

func (m *memPayroll) ListAdvances(_ context.Context, tenantID string, filter payroll.AdvanceFilter) ([]payroll.SalaryAdvance, int64, error) {
	var out []payroll.SalaryAdvance
	for _, id := range m.order {
		a := m.advances[id]
		if a.TenantID != tenantID || (filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID) {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (m *memPayroll) ListApprovedAdvances(_ context.Context, tenantID, employeeID string) ([]payroll.SalaryAdvance, error) {
	var out []payroll.SalaryAdvance
	for _, id := range m.order {
		a := m.advances[id]
		if a.TenantID == tenantID && a.EmployeeID == employeeID && a.Status == payroll.AdvanceStatusApproved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memPayroll) HasOutstandingAdvance(_ context.Context, tenantID, employeeID string) (bool, error) {
	for _, a := range m.advances {
		if a.TenantID == tenantID && a.EmployeeID == employeeID &&
			(a.Status == payroll.AdvanceStatusPending || a.Status == payroll.AdvanceStatusApproved) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPayroll) UpdateAdvanceDecision(_ context.Context, a payroll.SalaryAdvance) error {
	if m.advances[a.ID].Status != payroll.AdvanceStatusPending {
		return payroll.ErrAdvanceAlreadyDecided
	}
	m.advances[a.ID] = a
	return nil
}

func (m *memPayroll) MarkAdvancesRepaid(_ context.Context, _ string, ids []string, recordID string) error {
	for _, id := range ids {
		a := m.advances[id]
		a.Status = payroll.AdvanceStatusRepaid
		a.RepaidIn = &recordID
		m.advances[id] = a
	}
	return nil
}

type memEmployees struct {
	employee.EmployeeRepository
	rows map[string]employee.Employee
}

func (m memEmployees) GetByID(_ context.Context, tenantID, id string) (employee.Employee, error) {
	e, ok := m.rows[id]
	if !ok || e.TenantID != tenantID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type memTenants struct{ name string }

func (m memTenants) GetByID(_ context.Context, id string) (tenant.Tenant, error) {
	return tenant.Tenant{ID: id, Name: m.name}, nil
}

func (memTenants) UpdateName(context.Context, string, string) error { return nil }

type directTx struct{}

func (directTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingEnqueuer struct {
	mu   sync.Mutex
	msgs []email.Message
}

func (r *recordingEnqueuer) EnqueueEmail(_ context.Context, msg email.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}
