package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// ========================================
// PAYROLL RECORDS
// ========================================

const payrollRecordColumns = `
	pr.id, pr.tenant_id, pr.employee_id, pr.period_month, pr.period_year,
	pr.base_salary, pr.total_allowances, pr.total_deductions, pr.advance_deduction, pr.tax, pr.net_pay,
	pr.status, pr.processed_at, pr.paid_at, pr.created_at, pr.updated_at, e.full_name, e.employee_code`

const payrollRecordFrom = `
	FROM payroll_records pr
	LEFT JOIN employees e ON e.id = pr.employee_id`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	err := row.Scan(
		&r.ID, &r.TenantID, &r.EmployeeID, &r.PeriodMonth, &r.PeriodYear,
		&r.BaseSalary, &r.TotalAllowances, &r.TotalDeductions, &r.AdvanceDeduction, &r.Tax, &r.NetPay,
		&r.Status, &r.ProcessedAt, &r.PaidAt, &r.CreatedAt, &r.UpdatedAt, &r.EmployeeName, &r.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, err
	}
	return r, nil
}

func (p *payrollRepositoryImpl) CreateRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	id, err := newID()
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO payroll_records (
			id, tenant_id, employee_id, period_month, period_year,
			base_salary, total_allowances, total_deductions, advance_deduction, tax, net_pay, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`,
		id, record.TenantID, record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.BaseSalary, record.TotalAllowances, record.TotalDeductions, record.AdvanceDeduction,
		record.Tax, record.NetPay, record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("insert payroll record: %w", err)
	}

	record.ID = id
	return record, nil
}

func (p *payrollRepositoryImpl) GetRecordByID(ctx context.Context, tenantID, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)
	query := `SELECT ` + payrollRecordColumns + payrollRecordFrom + ` WHERE pr.id = $1 AND pr.tenant_id = $2`
	return scanPayrollRecord(q.QueryRow(ctx, query, id, tenantID))
}

func (p *payrollRepositoryImpl) ExistsForPeriod(ctx context.Context, tenantID, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, p.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM payroll_records
			WHERE tenant_id = $1 AND employee_id = $2 AND period_month = $3 AND period_year = $4
		)
	`, tenantID, employeeID, month, year).Scan(&exists)
	return exists, err
}

func (p *payrollRepositoryImpl) ListRecords(ctx context.Context, tenantID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, p.db)

	whereClause := "WHERE pr.tenant_id = $1"
	args := []interface{}{tenantID}
	argIdx := 2

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		whereClause += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		whereClause += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payroll_records pr "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payroll records: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY pr.period_year DESC, pr.period_month DESC, e.full_name ASC LIMIT $%d OFFSET $%d",
		payrollRecordColumns, payrollRecordFrom, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.PayrollRecord, 0)
	for rows.Next() {
		r, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, r)
	}
	return records, total, rows.Err()
}

func (p *payrollRepositoryImpl) UpdateRecordStatus(ctx context.Context, record payroll.PayrollRecord) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_records SET status = $1, processed_at = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $4 AND tenant_id = $5
	`, record.Status, record.ProcessedAt, record.PaidAt, record.ID, record.TenantID)
	if err != nil {
		return fmt.Errorf("update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

func (p *payrollRepositoryImpl) LatestForEmployee(ctx context.Context, tenantID, employeeID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)
	query := `SELECT ` + payrollRecordColumns + payrollRecordFrom + `
		WHERE pr.tenant_id = $1 AND pr.employee_id = $2
		ORDER BY pr.period_year DESC, pr.period_month DESC
		LIMIT 1`
	return scanPayrollRecord(q.QueryRow(ctx, query, tenantID, employeeID))
}

// ========================================
// SALARY ADVANCES
// ========================================

const salaryAdvanceColumns = `
	sa.id, sa.tenant_id, sa.employee_id, sa.amount, sa.reason, sa.status,
	sa.decided_by, sa.decided_at, sa.repaid_in, sa.created_at, sa.updated_at, e.full_name`

const salaryAdvanceFrom = `
	FROM salary_advances sa
	LEFT JOIN employees e ON e.id = sa.employee_id`

func scanSalaryAdvance(row pgx.Row) (payroll.SalaryAdvance, error) {
	var a payroll.SalaryAdvance
	err := row.Scan(
		&a.ID, &a.TenantID, &a.EmployeeID, &a.Amount, &a.Reason, &a.Status,
		&a.DecidedBy, &a.DecidedAt, &a.RepaidIn, &a.CreatedAt, &a.UpdatedAt, &a.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryAdvance{}, payroll.ErrAdvanceNotFound
		}
		return payroll.SalaryAdvance{}, err
	}
	return a, nil
}

func (p *payrollRepositoryImpl) CreateAdvance(ctx context.Context, advance payroll.SalaryAdvance) (payroll.SalaryAdvance, error) {
	q := GetQuerier(ctx, p.db)

	id, err := newID()
	if err != nil {
		return payroll.SalaryAdvance{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO salary_advances (id, tenant_id, employee_id, amount, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, id, advance.TenantID, advance.EmployeeID, advance.Amount, advance.Reason, advance.Status,
	).Scan(&advance.CreatedAt, &advance.UpdatedAt)
	if err != nil {
		return payroll.SalaryAdvance{}, fmt.Errorf("insert salary advance: %w", err)
	}

	advance.ID = id
	return advance, nil
}

func (p *payrollRepositoryImpl) GetAdvanceByID(ctx context.Context, tenantID, id string) (payroll.SalaryAdvance, error) {
	q := GetQuerier(ctx, p.db)
	query := `SELECT ` + salaryAdvanceColumns + salaryAdvanceFrom + ` WHERE sa.id = $1 AND sa.tenant_id = $2`
	return scanSalaryAdvance(q.QueryRow(ctx, query, id, tenantID))
}

func (p *payrollRepositoryImpl) ListAdvances(ctx context.Context, tenantID string, filter payroll.AdvanceFilter) ([]payroll.SalaryAdvance, int64, error) {
	q := GetQuerier(ctx, p.db)

	whereClause := "WHERE sa.tenant_id = $1"
	args := []interface{}{tenantID}
	argIdx := 2

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND sa.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND sa.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM salary_advances sa "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count salary advances: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY sa.created_at DESC LIMIT $%d OFFSET $%d",
		salaryAdvanceColumns, salaryAdvanceFrom, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	advances, err := p.queryAdvances(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return advances, total, nil
}

func (p *payrollRepositoryImpl) ListApprovedAdvances(ctx context.Context, tenantID, employeeID string) ([]payroll.SalaryAdvance, error) {
	query := `SELECT ` + salaryAdvanceColumns + salaryAdvanceFrom + `
		WHERE sa.tenant_id = $1 AND sa.employee_id = $2 AND sa.status = $3
		ORDER BY sa.created_at ASC`
	return p.queryAdvances(ctx, query, tenantID, employeeID, payroll.AdvanceStatusApproved)
}

func (p *payrollRepositoryImpl) queryAdvances(ctx context.Context, query string, args ...interface{}) ([]payroll.SalaryAdvance, error) {
	q := GetQuerier(ctx, p.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query salary advances: %w", err)
	}
	defer rows.Close()

	advances := make([]payroll.SalaryAdvance, 0)
	for rows.Next() {
		a, err := scanSalaryAdvance(rows)
		if err != nil {
			return nil, err
		}
		advances = append(advances, a)
	}
	return advances, rows.Err()
}

func (p *payrollRepositoryImpl) HasOutstandingAdvance(ctx context.Context, tenantID, employeeID string) (bool, error) {
	q := GetQuerier(ctx, p.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM salary_advances
			WHERE tenant_id = $1 AND employee_id = $2 AND status IN ($3, $4)
		)
	`, tenantID, employeeID, payroll.AdvanceStatusPending, payroll.AdvanceStatusApproved).Scan(&exists)
	return exists, err
}

// UpdateAdvanceDecision only applies to advances still PENDING.
func (p *payrollRepositoryImpl) UpdateAdvanceDecision(ctx context.Context, advance payroll.SalaryAdvance) error {
	q := GetQuerier(ctx, p.db)

	tag, err := q.Exec(ctx, `
		UPDATE salary_advances SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4 AND tenant_id = $5 AND status = $6
	`, advance.Status, advance.DecidedBy, advance.DecidedAt, advance.ID, advance.TenantID, payroll.AdvanceStatusPending)
	if err != nil {
		return fmt.Errorf("update advance decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrAdvanceAlreadyDecided
	}
	return nil
}

func (p *payrollRepositoryImpl) MarkAdvancesRepaid(ctx context.Context, tenantID string, ids []string, recordID string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, p.db)

	_, err := q.Exec(ctx, `
		UPDATE salary_advances SET status = $1, repaid_in = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = ANY($4) AND status = $5
	`, payroll.AdvanceStatusRepaid, recordID, tenantID, ids, payroll.AdvanceStatusApproved)
	if err != nil {
		return fmt.Errorf("mark advances repaid: %w", err)
	}
	return nil
}
