package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reviewRepositoryImpl struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) performance.ReviewRepository {
	return &reviewRepositoryImpl{db: db}
}

const reviewColumns = `
	pr.id, pr.tenant_id, pr.employee_id, pr.reviewer_id, pr.period, pr.rating, pr.goals, pr.comments,
	pr.status, pr.submitted_at, pr.acknowledged_at, pr.created_at, pr.updated_at, e.full_name, re.full_name`

const reviewFrom = `
	FROM performance_reviews pr
	LEFT JOIN employees e ON e.id = pr.employee_id
	LEFT JOIN employees re ON re.user_id = pr.reviewer_id`

func scanReview(row pgx.Row) (performance.Review, error) {
	var r performance.Review
	err := row.Scan(
		&r.ID, &r.TenantID, &r.EmployeeID, &r.ReviewerID, &r.Period, &r.Rating, &r.Goals, &r.Comments,
		&r.Status, &r.SubmittedAt, &r.AcknowledgedAt, &r.CreatedAt, &r.UpdatedAt, &r.EmployeeName, &r.ReviewerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return performance.Review{}, performance.ErrReviewNotFound
		}
		return performance.Review{}, err
	}
	return r, nil
}

func (r *reviewRepositoryImpl) Create(ctx context.Context, review performance.Review) (performance.Review, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return performance.Review{}, err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO performance_reviews (id, tenant_id, employee_id, reviewer_id, period, rating, goals, comments, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, id, review.TenantID, review.EmployeeID, review.ReviewerID, review.Period, review.Rating,
		review.Goals, review.Comments, review.Status,
	).Scan(&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return performance.Review{}, performance.ErrReviewExists
		}
		return performance.Review{}, fmt.Errorf("insert performance review: %w", err)
	}

	review.ID = id
	return review, nil
}

func (r *reviewRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (performance.Review, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + reviewColumns + reviewFrom + ` WHERE pr.id = $1 AND pr.tenant_id = $2`
	return scanReview(q.QueryRow(ctx, query, id, tenantID))
}

func (r *reviewRepositoryImpl) List(ctx context.Context, tenantID string, filter performance.ReviewFilter) ([]performance.Review, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE pr.tenant_id = $1"
	args := []interface{}{tenantID}
	argIdx := 2

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ReviewerID != nil {
		whereClause += fmt.Sprintf(" AND pr.reviewer_id = $%d", argIdx)
		args = append(args, *filter.ReviewerID)
		argIdx++
	}
	if filter.Period != nil {
		whereClause += fmt.Sprintf(" AND pr.period = $%d", argIdx)
		args = append(args, *filter.Period)
		argIdx++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.ExcludeDrafts {
		whereClause += fmt.Sprintf(" AND pr.status <> $%d", argIdx)
		args = append(args, performance.ReviewStatusDraft)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM performance_reviews pr "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count performance reviews: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY pr.period DESC, pr.created_at DESC LIMIT $%d OFFSET $%d",
		reviewColumns, reviewFrom, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list performance reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]performance.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

func (r *reviewRepositoryImpl) ExistsForPeriod(ctx context.Context, tenantID, employeeID, period string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM performance_reviews WHERE tenant_id = $1 AND employee_id = $2 AND period = $3)
	`, tenantID, employeeID, period).Scan(&exists)
	return exists, err
}

func (r *reviewRepositoryImpl) Update(ctx context.Context, review performance.Review) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE performance_reviews SET
			rating = $1, goals = $2, comments = $3, status = $4,
			submitted_at = $5, acknowledged_at = $6, updated_at = NOW()
		WHERE id = $7 AND tenant_id = $8
	`, review.Rating, review.Goals, review.Comments, review.Status,
		review.SubmittedAt, review.AcknowledgedAt, review.ID, review.TenantID)
	if err != nil {
		return fmt.Errorf("update performance review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return performance.ErrReviewNotFound
	}
	return nil
}

// AverageRating considers submitted and acknowledged reviews only.
func (r *reviewRepositoryImpl) AverageRating(ctx context.Context, tenantID string) (float64, error) {
	q := GetQuerier(ctx, r.db)

	var avg float64
	err := q.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0)::FLOAT8
		FROM performance_reviews
		WHERE tenant_id = $1 AND status <> $2
	`, tenantID, performance.ReviewStatusDraft).Scan(&avg)
	return avg, err
}
