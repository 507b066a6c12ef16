package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	if err := row.Scan(&d.ID, &d.TenantID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}
	return d, nil
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return department.Department{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO departments (id, tenant_id, name) VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`, id, d.TenantID, d.Name).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("insert department: %w", err)
	}

	d.ID = id
	return d, nil
}

func (r *departmentRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)
	return scanDepartment(q.QueryRow(ctx, `
		SELECT id, tenant_id, name, created_at, updated_at
		FROM departments WHERE id = $1 AND tenant_id = $2
	`, id, tenantID))
}

func (r *departmentRepositoryImpl) List(ctx context.Context, tenantID string) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, tenant_id, name, created_at, updated_at
		FROM departments WHERE tenant_id = $1 ORDER BY name ASC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	departments := make([]department.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepositoryImpl) ExistsByName(ctx context.Context, tenantID, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE tenant_id = $1 AND LOWER(name) = LOWER($2))`, tenantID, name).Scan(&exists)
	return exists, err
}

func (r *departmentRepositoryImpl) Rename(ctx context.Context, tenantID, id, name string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE departments SET name = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`, name, id, tenantID)
	if err != nil {
		if isUniqueViolation(err) {
			return department.ErrDepartmentNameExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) Delete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}
