package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `id, tenant_id, name, code, color, is_active, created_at, updated_at`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(&lt.ID, &lt.TenantID, &lt.Name, &lt.Code, &lt.Color, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.LeaveType{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO leave_types (id, tenant_id, name, code, color, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, id, leaveType.TenantID, leaveType.Name, leaveType.Code, leaveType.Color, leaveType.IsActive,
	).Scan(&leaveType.CreatedAt, &leaveType.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveType{}, leave.ErrLeaveTypeCodeExists
		}
		return leave.LeaveType{}, fmt.Errorf("insert leave type: %w", err)
	}

	leaveType.ID = id
	return leaveType, nil
}

func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeaveType(q.QueryRow(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE id = $1 AND tenant_id = $2`, id, tenantID))
}

func (r *leaveTypeRepositoryImpl) List(ctx context.Context, tenantID string, activeOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeColumns + ` FROM leave_types WHERE tenant_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list leave types: %w", err)
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (r *leaveTypeRepositoryImpl) ExistsByCode(ctx context.Context, tenantID, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leave_types WHERE tenant_id = $1 AND code = $2)`, tenantID, code).Scan(&exists)
	return exists, err
}

func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, tenantID string, req leave.UpdateLeaveTypeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+2)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := fmt.Sprintf("UPDATE leave_types SET %s WHERE id = $%d AND tenant_id = $%d", strings.Join(setClauses, ", "), i, i+1)
	args = append(args, req.ID, tenantID)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update leave type with id %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

func (r *leaveTypeRepositoryImpl) Deactivate(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE leave_types SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}
