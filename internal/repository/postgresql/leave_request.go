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

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.tenant_id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.total_days, lr.reason, lr.status, lr.approver_id, lr.approver_role,
	lr.approved_by, lr.approved_at, lr.rejected_by, lr.rejected_at, lr.rejection_reason,
	lr.created_at, lr.updated_at, lt.name, e.full_name, e.branch_id`

const leaveRequestFrom = `
	FROM leave_requests lr
	LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id
	LEFT JOIN employees e ON e.id = lr.employee_id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.TenantID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate,
		&lr.TotalDays, &lr.Reason, &lr.Status, &lr.ApproverID, &lr.ApproverRole,
		&lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectedBy, &lr.RejectedAt, &lr.RejectionReason,
		&lr.CreatedAt, &lr.UpdatedAt, &lr.LeaveTypeName, &lr.EmployeeName, &lr.BranchID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	query := `
		INSERT INTO leave_requests (
			id, tenant_id, employee_id, leave_type_id,
			start_date, end_date, total_days, reason,
			status, approver_id, approver_role
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		id, request.TenantID, request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.TotalDays, request.Reason,
		request.Status, request.ApproverID, request.ApproverRole,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("insert leave request: %w", err)
	}

	request.ID = id
	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + ` WHERE lr.id = $1 AND lr.tenant_id = $2`
	return scanLeaveRequest(q.QueryRow(ctx, query, id, tenantID))
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, tenantID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE lr.tenant_id = $1"
	args := []interface{}{tenantID}
	argIdx := 2

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.LeaveTypeID != nil {
		whereClause += fmt.Sprintf(" AND lr.leave_type_id = $%d", argIdx)
		args = append(args, *filter.LeaveTypeID)
		argIdx++
	}
	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND lr.end_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND lr.start_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.BranchID != nil {
		whereClause += fmt.Sprintf(" AND e.branch_id = $%d", argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}
	if filter.ApproverID != nil {
		whereClause += fmt.Sprintf(" AND lr.approver_id = $%d", argIdx)
		args = append(args, *filter.ApproverID)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM leave_requests lr LEFT JOIN employees e ON e.id = lr.employee_id " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leave requests: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY lr.created_at DESC, lr.id DESC LIMIT $%d OFFSET $%d",
		leaveRequestColumns, leaveRequestFrom, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}
	return requests, total, rows.Err()
}

// ExistsOverlapping ignores rejected requests.
func (r *leaveRequestRepositoryImpl) ExistsOverlapping(ctx context.Context, tenantID, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE tenant_id = $1 AND employee_id = $2
			  AND status IN ($3, $4)
			  AND start_date <= $6 AND end_date >= $5
		)
	`, tenantID, employeeID, leave.LeaveRequestStatusPending, leave.LeaveRequestStatusApproved, start, end).Scan(&exists)
	return exists, err
}

func (r *leaveRequestRepositoryImpl) LockEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, "leave_request:"+employeeID); err != nil {
		return fmt.Errorf("lock employee leave requests: %w", err)
	}
	return nil
}

// SumDays totals requests by the year of their start date.
func (r *leaveRequestRepositoryImpl) SumDays(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int, status leave.LeaveRequestStatus) (int, error) {
	q := GetQuerier(ctx, r.db)

	var total int
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_days), 0)::INT
		FROM leave_requests
		WHERE tenant_id = $1 AND employee_id = $2 AND leave_type_id = $3
		  AND EXTRACT(YEAR FROM start_date) = $4 AND status = $5
	`, tenantID, employeeID, leaveTypeID, year, status).Scan(&total)
	return total, err
}

func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests SET
			status = $1, approved_by = $2, approved_at = $3,
			rejected_by = $4, rejected_at = $5, rejection_reason = $6, updated_at = NOW()
		WHERE id = $7 AND tenant_id = $8 AND status = $9
	`,
		request.Status, request.ApprovedBy, request.ApprovedAt,
		request.RejectedBy, request.RejectedAt, request.RejectionReason,
		request.ID, request.TenantID, leave.LeaveRequestStatusPending,
	)
	if err != nil {
		return fmt.Errorf("update leave decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInvalidStateTransition
	}
	return nil
}
