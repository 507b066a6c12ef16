package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.tenant_id, u.email, u.password_hash, u.role, u.is_active, u.is_demo,
	u.mfa_enabled, u.mfa_secret, u.failed_login_attempts, u.last_login_at,
	u.oauth_provider, u.oauth_provider_id, u.created_at, u.updated_at, e.id`

const userFrom = `FROM users u LEFT JOIN employees e ON e.user_id = u.id`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.IsDemo,
		&u.MFAEnabled, &u.MFASecret, &u.FailedLoginAttempts, &u.LastLoginAt,
		&u.OAuthProvider, &u.OAuthProviderID, &u.CreatedAt, &u.UpdatedAt, &u.EmployeeID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` ` + userFrom + ` WHERE LOWER(u.email) = LOWER($1)`
	return scanUser(q.QueryRow(ctx, query, email))
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` ` + userFrom + ` WHERE u.id = $1 AND u.tenant_id = $2`
	return scanUser(q.QueryRow(ctx, query, id, tenantID))
}

func (r *userRepositoryImpl) List(ctx context.Context, tenantID string, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE u.tenant_id = $1"
	args := []interface{}{tenantID}
	argIdx := 2

	if filter.Role != nil {
		whereClause += fmt.Sprintf(" AND u.role = $%d", argIdx)
		args = append(args, *filter.Role)
		argIdx++
	}
	if filter.IsActive != nil {
		whereClause += fmt.Sprintf(" AND u.is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(" AND u.email ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM users u "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, userFrom, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return user.User{}, err
	}

	query := `
		INSERT INTO users (id, tenant_id, email, password_hash, role, is_active, is_demo, oauth_provider, oauth_provider_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		id, newUser.TenantID, newUser.Email, newUser.PasswordHash, newUser.Role,
		newUser.IsActive, newUser.IsDemo, newUser.OAuthProvider, newUser.OAuthProviderID,
	).Scan(&newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}

	newUser.ID = id
	return newUser, nil
}

func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	return exists, err
}

// FindFirstByRole returns the oldest active user holding role.
func (r *userRepositoryImpl) FindFirstByRole(ctx context.Context, tenantID string, role user.Role) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` ` + userFrom + `
		WHERE u.tenant_id = $1 AND u.role = $2 AND u.is_active = TRUE
		ORDER BY u.created_at ASC, u.id ASC
		LIMIT 1`
	return scanUser(q.QueryRow(ctx, query, tenantID, role))
}

func (r *userRepositoryImpl) UpdateRole(ctx context.Context, tenantID, id string, role user.Role) error {
	return r.execOne(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`, role, id, tenantID)
}

func (r *userRepositoryImpl) UpdateStatus(ctx context.Context, tenantID, id string, active bool) error {
	return r.execOne(ctx, `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`, active, id, tenantID)
}

func (r *userRepositoryImpl) RecordLoginSuccess(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE users SET failed_login_attempts = 0, last_login_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
}

// RecordLoginFailure increments the counter and returns the new value.
func (r *userRepositoryImpl) RecordLoginFailure(ctx context.Context, id string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var attempts int
	err := q.QueryRow(ctx, `
		UPDATE users SET failed_login_attempts = failed_login_attempts + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING failed_login_attempts
	`, id).Scan(&attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, user.ErrUserNotFound
	}
	return attempts, err
}

func (r *userRepositoryImpl) SetMFASecret(ctx context.Context, id string, secret string) error {
	return r.execOne(ctx, `UPDATE users SET mfa_secret = $1, mfa_enabled = FALSE, updated_at = NOW() WHERE id = $2`, secret, id)
}

func (r *userRepositoryImpl) EnableMFA(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE users SET mfa_enabled = TRUE, updated_at = NOW() WHERE id = $1 AND mfa_secret IS NOT NULL`, id)
}

func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE users
		SET oauth_provider = 'google', oauth_provider_id = $1, updated_at = NOW()
		WHERE LOWER(email) = LOWER($2)
	`, googleID, email)
	if err != nil {
		return user.User{}, fmt.Errorf("link google account: %w", err)
	}
	return r.GetByEmail(ctx, email)
}

func (r *userRepositoryImpl) execOne(ctx context.Context, query string, args ...interface{}) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
