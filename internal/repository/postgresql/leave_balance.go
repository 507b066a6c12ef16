package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `
	lb.id, lb.tenant_id, lb.employee_id, lb.leave_type_id, lb.year, lb.allocated, lb.accrued,
	lb.carried_forward, lb.used, lb.pending, lb.available, lb.updated_at, lt.name, lt.code`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID, &b.TenantID, &b.EmployeeID, &b.LeaveTypeID, &b.Year, &b.Allocated, &b.Accrued,
		&b.CarriedForward, &b.Used, &b.Pending, &b.Available, &b.UpdatedAt, &b.LeaveTypeName, &b.LeaveTypeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) Get(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + `
		FROM leave_balances lb
		LEFT JOIN leave_types lt ON lt.id = lb.leave_type_id
		WHERE lb.tenant_id = $1 AND lb.employee_id = $2 AND lb.leave_type_id = $3 AND lb.year = $4`
	return scanLeaveBalance(q.QueryRow(ctx, query, tenantID, employeeID, leaveTypeID, year))
}

func (r *leaveBalanceRepositoryImpl) ListByEmployee(ctx context.Context, tenantID, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+leaveBalanceColumns+`
		FROM leave_balances lb
		LEFT JOIN leave_types lt ON lt.id = lb.leave_type_id
		WHERE lb.tenant_id = $1 AND lb.employee_id = $2 AND lb.year = $3
		ORDER BY lt.name ASC`, tenantID, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("list leave balances: %w", err)
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// Upsert keeps one row per (employee, leave type, year); the existing id survives a conflict.
func (r *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO leave_balances (
			id, tenant_id, employee_id, leave_type_id, year,
			allocated, accrued, carried_forward, used, pending, available
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id, leave_type_id, year) DO UPDATE SET
			allocated = EXCLUDED.allocated,
			accrued = EXCLUDED.accrued,
			carried_forward = EXCLUDED.carried_forward,
			used = EXCLUDED.used,
			pending = EXCLUDED.pending,
			available = EXCLUDED.available,
			updated_at = NOW()
		RETURNING id, updated_at
	`,
		id, balance.TenantID, balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.Allocated, balance.Accrued, balance.CarriedForward, balance.Used, balance.Pending, balance.Available,
	).Scan(&balance.ID, &balance.UpdatedAt)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("upsert leave balance: %w", err)
	}
	return balance, nil
}

func (r *leaveBalanceRepositoryImpl) Lock(ctx context.Context, employeeID, leaveTypeID string, year int) error {
	q := GetQuerier(ctx, r.db)

	key := fmt.Sprintf("leave_balance:%s:%s:%d", employeeID, leaveTypeID, year)
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return fmt.Errorf("lock leave balance: %w", err)
	}
	return nil
}
