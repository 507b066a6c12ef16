package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/tenant"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type tenantRepositoryImpl struct {
	db *database.DB
}

func NewTenantRepository(db *database.DB) tenant.TenantRepository {
	return &tenantRepositoryImpl{db: db}
}

func (r *tenantRepositoryImpl) GetByID(ctx context.Context, id string) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	var t tenant.Tenant
	err := q.QueryRow(ctx, `
		SELECT id, name, slug, is_demo, created_at, updated_at
		FROM tenants WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Slug, &t.IsDemo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tenant.Tenant{}, tenant.ErrTenantNotFound
		}
		return tenant.Tenant{}, err
	}
	return t, nil
}

func (r *tenantRepositoryImpl) UpdateName(ctx context.Context, id string, name string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE tenants SET name = $1, updated_at = NOW() WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

func NewTenantWriter(db *database.DB) tenant.TenantWriter {
	return &tenantRepositoryImpl{db: db}
}

func (r *tenantRepositoryImpl) Create(ctx context.Context, t tenant.Tenant) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return tenant.Tenant{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO tenants (id, name, slug, is_demo)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, id, t.Name, t.Slug, t.IsDemo).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return tenant.Tenant{}, tenant.ErrSlugExists
		}
		return tenant.Tenant{}, fmt.Errorf("insert tenant: %w", err)
	}

	t.ID = id
	return t, nil
}
