package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

const branchColumns = `id, tenant_id, name, code, address, manager_user_id, created_at, updated_at`

func scanBranch(row pgx.Row) (branch.Branch, error) {
	var b branch.Branch
	err := row.Scan(&b.ID, &b.TenantID, &b.Name, &b.Code, &b.Address, &b.ManagerUserID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, err
	}
	return b, nil
}

func (r *branchRepositoryImpl) Create(ctx context.Context, newBranch branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return branch.Branch{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO branches (id, tenant_id, name, code, address, manager_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, id, newBranch.TenantID, newBranch.Name, newBranch.Code, newBranch.Address, newBranch.ManagerUserID,
	).Scan(&newBranch.CreatedAt, &newBranch.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return branch.Branch{}, branch.ErrBranchCodeExists
		}
		return branch.Branch{}, fmt.Errorf("insert branch: %w", err)
	}

	newBranch.ID = id
	return newBranch, nil
}

func (r *branchRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)
	return scanBranch(q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1 AND tenant_id = $2`, id, tenantID))
}

func (r *branchRepositoryImpl) List(ctx context.Context, tenantID string) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+branchColumns+` FROM branches WHERE tenant_id = $1 ORDER BY name ASC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	branches := make([]branch.Branch, 0)
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

func (r *branchRepositoryImpl) ExistsByCode(ctx context.Context, tenantID, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM branches WHERE tenant_id = $1 AND code = $2)`, tenantID, code).Scan(&exists)
	return exists, err
}

func (r *branchRepositoryImpl) Update(ctx context.Context, tenantID string, req branch.UpdateBranchRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.ManagerUserID != nil {
		updates["manager_user_id"] = *req.ManagerUserID
	}
	if req.ClearManager {
		updates["manager_user_id"] = nil
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

	sql := fmt.Sprintf("UPDATE branches SET %s WHERE id = $%d AND tenant_id = $%d", strings.Join(setClauses, ", "), i, i+1)
	args = append(args, req.ID, tenantID)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update branch with id %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}
	return nil
}

func (r *branchRepositoryImpl) Delete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM branches WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return branch.ErrBranchNotFound
	}
	return nil
}
