package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leavePolicyRepositoryImpl struct {
	db *database.DB
}

func NewLeavePolicyRepository(db *database.DB) leave.LeavePolicyRepository {
	return &leavePolicyRepositoryImpl{db: db}
}

const leavePolicyColumns = `
	id, tenant_id, leave_type_id, max_days_per_year, accrual_rate, max_carry_forward,
	probation_period_days, min_days_notice, max_days_per_request, allow_negative_balance,
	is_active, effective_date, expiry_date, created_at, updated_at`

func scanLeavePolicy(row pgx.Row) (leave.LeavePolicy, error) {
	var p leave.LeavePolicy
	err := row.Scan(
		&p.ID, &p.TenantID, &p.LeaveTypeID, &p.MaxDaysPerYear, &p.AccrualRate, &p.MaxCarryForward,
		&p.ProbationPeriodDays, &p.MinDaysNotice, &p.MaxDaysPerRequest, &p.AllowNegativeBalance,
		&p.IsActive, &p.EffectiveDate, &p.ExpiryDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeavePolicy{}, leave.ErrPolicyNotFound
		}
		return leave.LeavePolicy{}, err
	}
	return p, nil
}

func (r *leavePolicyRepositoryImpl) Create(ctx context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.LeavePolicy{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO leave_policies (
			id, tenant_id, leave_type_id, max_days_per_year, accrual_rate, max_carry_forward,
			probation_period_days, min_days_notice, max_days_per_request, allow_negative_balance,
			is_active, effective_date, expiry_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`,
		id, policy.TenantID, policy.LeaveTypeID, policy.MaxDaysPerYear, policy.AccrualRate, policy.MaxCarryForward,
		policy.ProbationPeriodDays, policy.MinDaysNotice, policy.MaxDaysPerRequest, policy.AllowNegativeBalance,
		policy.IsActive, policy.EffectiveDate, policy.ExpiryDate,
	).Scan(&policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return leave.LeavePolicy{}, fmt.Errorf("insert leave policy: %w", err)
	}

	policy.ID = id
	return policy, nil
}

func (r *leavePolicyRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeavePolicy(q.QueryRow(ctx, `SELECT `+leavePolicyColumns+` FROM leave_policies WHERE id = $1 AND tenant_id = $2`, id, tenantID))
}

func (r *leavePolicyRepositoryImpl) List(ctx context.Context, tenantID string, leaveTypeID *string) ([]leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leavePolicyColumns + ` FROM leave_policies WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if leaveTypeID != nil {
		query += ` AND leave_type_id = $2`
		args = append(args, *leaveTypeID)
	}
	query += ` ORDER BY leave_type_id, effective_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leave policies: %w", err)
	}
	defer rows.Close()

	policies := make([]leave.LeavePolicy, 0)
	for rows.Next() {
		p, err := scanLeavePolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (r *leavePolicyRepositoryImpl) Update(ctx context.Context, policy leave.LeavePolicy) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_policies SET
			max_days_per_year = $1, accrual_rate = $2, max_carry_forward = $3,
			probation_period_days = $4, min_days_notice = $5, max_days_per_request = $6,
			allow_negative_balance = $7, is_active = $8, expiry_date = $9, updated_at = NOW()
		WHERE id = $10 AND tenant_id = $11
	`,
		policy.MaxDaysPerYear, policy.AccrualRate, policy.MaxCarryForward,
		policy.ProbationPeriodDays, policy.MinDaysNotice, policy.MaxDaysPerRequest,
		policy.AllowNegativeBalance, policy.IsActive, policy.ExpiryDate,
		policy.ID, policy.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update leave policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrPolicyNotFound
	}
	return nil
}

func (r *leavePolicyRepositoryImpl) FindEffective(ctx context.Context, tenantID, leaveTypeID string, at time.Time) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leavePolicyColumns + `
		FROM leave_policies
		WHERE tenant_id = $1 AND leave_type_id = $2 AND is_active = TRUE
		  AND effective_date <= $3 AND (expiry_date IS NULL OR expiry_date >= $3)
		ORDER BY effective_date DESC
		LIMIT 1`
	return scanLeavePolicy(q.QueryRow(ctx, query, tenantID, leaveTypeID, at))
}
