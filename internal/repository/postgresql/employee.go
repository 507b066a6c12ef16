package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.tenant_id, e.user_id, e.employee_code, e.full_name, e.email, e.position,
	e.department_id, e.branch_id, e.hire_date, e.employment_status, e.base_salary,
	e.created_at, e.updated_at, u.role, d.name, b.name`

const employeeFrom = `
	FROM employees e
	LEFT JOIN users u ON u.id = e.user_id
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN branches b ON b.id = e.branch_id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.TenantID, &emp.UserID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Position,
		&emp.DepartmentID, &emp.BranchID, &emp.HireDate, &emp.EmploymentStatus, &emp.BaseSalary,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.UserRole, &emp.DepartmentName, &emp.BranchName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

func (e *employeeRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `SELECT ` + employeeColumns + employeeFrom + ` WHERE e.id = $1 AND e.tenant_id = $2`
	return scanEmployee(q.QueryRow(ctx, query, id, tenantID))
}

func (e *employeeRepositoryImpl) GetByUserID(ctx context.Context, tenantID, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `SELECT ` + employeeColumns + employeeFrom + ` WHERE e.user_id = $1 AND e.tenant_id = $2`
	return scanEmployee(q.QueryRow(ctx, query, userID, tenantID))
}

func (e *employeeRepositoryImpl) List(ctx context.Context, tenantID string, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	whereClause := "WHERE e.tenant_id = $1"
	args := []interface{}{tenantID}
	argIdx := 2

	if filter.BranchID != nil {
		whereClause += fmt.Sprintf(" AND e.branch_id = $%d", argIdx)
		args = append(args, *filter.BranchID)
		argIdx++
	}
	if filter.DepartmentID != nil {
		whereClause += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND e.employment_status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.employee_code ILIKE $%d OR e.email ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees e "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY e.full_name ASC, e.id ASC LIMIT $%d OFFSET $%d",
		employeeColumns, employeeFrom, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	employees, err := e.queryEmployees(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (e *employeeRepositoryImpl) ListActive(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `SELECT ` + employeeColumns + employeeFrom + `
		WHERE e.tenant_id = $1 AND e.employment_status <> $2
		ORDER BY e.id`
	return e.queryEmployees(ctx, q, query, tenantID, employee.EmploymentStatusTerminated)
}

func (e *employeeRepositoryImpl) ListActiveTenants(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `
		SELECT DISTINCT e.tenant_id
		FROM employees e
		JOIN tenants t ON t.id = e.tenant_id
		WHERE e.employment_status <> $1 AND t.is_demo = FALSE
	`, employee.EmploymentStatusTerminated)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (e *employeeRepositoryImpl) queryEmployees(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	id, err := newID()
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (
			id, tenant_id, user_id, employee_code, full_name, email, position,
			department_id, branch_id, hire_date, employment_status, base_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		id, newEmployee.TenantID, newEmployee.UserID, newEmployee.EmployeeCode, newEmployee.FullName,
		newEmployee.Email, newEmployee.Position, newEmployee.DepartmentID, newEmployee.BranchID,
		newEmployee.HireDate, newEmployee.EmploymentStatus, newEmployee.BaseSalary,
	).Scan(&newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("insert employee: %w", err)
	}

	newEmployee.ID = id
	return newEmployee, nil
}

func (e *employeeRepositoryImpl) ExistsByCodeOrEmail(ctx context.Context, tenantID string, employeeCode, email string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM employees
			WHERE tenant_id = $1 AND (employee_code = $2 OR LOWER(email) = LOWER($3))
		)
	`, tenantID, employeeCode, email).Scan(&exists)
	return exists, err
}

// Update writes only the fields present on req; empty department or branch ids clear the link.
func (e *employeeRepositoryImpl) Update(ctx context.Context, tenantID, id string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	updates := make(map[string]interface{})

	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			updates["department_id"] = nil
		} else {
			updates["department_id"] = *req.DepartmentID
		}
	}
	if req.BranchID != nil {
		if *req.BranchID == "" {
			updates["branch_id"] = nil
		} else {
			updates["branch_id"] = *req.BranchID
		}
	}
	if req.Status != nil {
		updates["employment_status"] = *req.Status
	}
	if req.BaseSalary != nil {
		updates["base_salary"] = *req.BaseSalary
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

	sql := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d AND tenant_id = $%d", strings.Join(setClauses, ", "), i, i+1)
	args = append(args, id, tenantID)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (e *employeeRepositoryImpl) UpdateStatus(ctx context.Context, tenantID, id string, status employee.EmploymentStatus) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET employment_status = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`, status, id, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
