package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	tenantID := seedTenant(t, db)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)

	created, err := repo.Create(ctx, user.User{
		TenantID: tenantID,
		Email:    "HR-" + tenantID[:8] + "@example.com",
		Role:     user.RoleHR,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	found, err := repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.Create(ctx, user.User{TenantID: tenantID, Email: created.Email, Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	first, err := repo.FindFirstByRole(ctx, tenantID, user.RoleHR)
	require.NoError(t, err)
	assert.Equal(t, created.ID, first.ID)

	attempts, err := repo.RecordLoginFailure(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)

	_, err = repo.GetByID(ctx, tenantID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestLeaveRepositories_BalanceAndDecision(t *testing.T) {
	db := newTestDB(t)
	tenantID := seedTenant(t, db)
	ctx := context.Background()

	employees := postgresql.NewEmployeeRepository(db)
	types := postgresql.NewLeaveTypeRepository(db)
	policies := postgresql.NewLeavePolicyRepository(db)
	balances := postgresql.NewLeaveBalanceRepository(db)
	requests := postgresql.NewLeaveRequestRepository(db)
	tx := postgresql.NewTransactor(db)

	emp, err := employees.Create(ctx, employee.Employee{
		TenantID:         tenantID,
		EmployeeCode:     "E001",
		FullName:         "Dewi Lestari",
		Email:            "dewi-" + tenantID[:8] + "@example.com",
		HireDate:         date(2023, time.March, 1),
		EmploymentStatus: employee.EmploymentStatusActive,
		BaseSalary:       decimal.NewFromInt(8000000),
	})
	require.NoError(t, err)

	annual, err := types.Create(ctx, leave.LeaveType{TenantID: tenantID, Name: "Annual", Code: "AL", IsActive: true})
	require.NoError(t, err)

	_, err = policies.Create(ctx, leave.LeavePolicy{
		TenantID: tenantID, LeaveTypeID: annual.ID, MaxDaysPerYear: 12, IsActive: true,
		EffectiveDate: date(2020, time.January, 1),
	})
	require.NoError(t, err)
	newer, err := policies.Create(ctx, leave.LeavePolicy{
		TenantID: tenantID, LeaveTypeID: annual.ID, MaxDaysPerYear: 14, IsActive: true,
		EffectiveDate: date(2024, time.January, 1),
	})
	require.NoError(t, err)

	effective, err := policies.FindEffective(ctx, tenantID, annual.ID, date(2025, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, newer.ID, effective.ID)

	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := requests.LockEmployee(ctx, emp.ID); err != nil {
			return err
		}
		if err := balances.Lock(ctx, emp.ID, annual.ID, 2025); err != nil {
			return err
		}
		b := leave.LeaveBalance{TenantID: tenantID, EmployeeID: emp.ID, LeaveTypeID: annual.ID, Year: 2025, Allocated: 14}
		b.ComputeAvailable()
		_, err := balances.Upsert(ctx, b)
		return err
	})
	require.NoError(t, err)

	first, err := balances.Get(ctx, tenantID, emp.ID, annual.ID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 14, first.Available)

	again, err := balances.Upsert(ctx, leave.LeaveBalance{
		TenantID: tenantID, EmployeeID: emp.ID, LeaveTypeID: annual.ID, Year: 2025, Allocated: 14, Pending: 3, Available: 11,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	req, err := requests.Create(ctx, leave.LeaveRequest{
		TenantID: tenantID, EmployeeID: emp.ID, LeaveTypeID: annual.ID,
		StartDate: date(2025, time.July, 7), EndDate: date(2025, time.July, 9),
		TotalDays: 3, Status: leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)

	overlap, err := requests.ExistsOverlapping(ctx, tenantID, emp.ID, date(2025, time.July, 9), date(2025, time.July, 10))
	require.NoError(t, err)
	assert.True(t, overlap)

	pending, err := requests.SumDays(ctx, tenantID, emp.ID, annual.ID, 2025, leave.LeaveRequestStatusPending)
	require.NoError(t, err)
	assert.Equal(t, 3, pending)

	now := time.Now()
	req.Status = leave.LeaveRequestStatusApproved
	req.ApprovedAt = &now
	require.NoError(t, requests.UpdateDecision(ctx, req))
	assert.ErrorIs(t, requests.UpdateDecision(ctx, req), leave.ErrInvalidStateTransition)
}

func TestSettingsRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	tenantID := seedTenant(t, db)
	ctx := context.Background()
	repo := postgresql.NewSettingsRepository(db)

	_, err := repo.Get(ctx, tenantID)
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)

	s := settings.Defaults(tenantID)
	s.RequireMFA = true
	_, err = repo.Upsert(ctx, s)
	require.NoError(t, err)

	got, err := repo.Get(ctx, tenantID)
	require.NoError(t, err)
	assert.True(t, got.RequireMFA)
	assert.Equal(t, settings.DefaultMaxLoginAttempts, got.MaxLoginAttempts)
}
