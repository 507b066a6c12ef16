package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) leave.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func (r *holidayRepositoryImpl) Create(ctx context.Context, holiday leave.Holiday) (leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Holiday{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO holidays (id, tenant_id, name, date, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, id, holiday.TenantID, holiday.Name, holiday.Date, holiday.IsActive).Scan(&holiday.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.Holiday{}, leave.ErrHolidayExists
		}
		return leave.Holiday{}, fmt.Errorf("insert holiday: %w", err)
	}

	holiday.ID = id
	return holiday, nil
}

func (r *holidayRepositoryImpl) ListActiveBetween(ctx context.Context, tenantID string, start, end time.Time) ([]leave.Holiday, error) {
	return r.list(ctx, `
		SELECT id, tenant_id, name, date, is_active, created_at
		FROM holidays
		WHERE tenant_id = $1 AND is_active = TRUE AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`, tenantID, start, end)
}

func (r *holidayRepositoryImpl) ListByYear(ctx context.Context, tenantID string, year int) ([]leave.Holiday, error) {
	return r.list(ctx, `
		SELECT id, tenant_id, name, date, is_active, created_at
		FROM holidays
		WHERE tenant_id = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date ASC
	`, tenantID, year)
}

func (r *holidayRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]leave.Holiday, 0)
	for rows.Next() {
		var h leave.Holiday
		if err := rows.Scan(&h.ID, &h.TenantID, &h.Name, &h.Date, &h.IsActive, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *holidayRepositoryImpl) ExistsOnDate(ctx context.Context, tenantID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM holidays WHERE tenant_id = $1 AND date = $2)`, tenantID, date).Scan(&exists)
	return exists, err
}

func (r *holidayRepositoryImpl) Delete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrHolidayNotFound
	}
	return nil
}
