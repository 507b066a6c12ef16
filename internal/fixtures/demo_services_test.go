package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/demo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoDashboardService(t *testing.T) {
	svc := NewDemoDashboardService()
	svc.now = func() time.Time { return time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC) }

	admin, err := svc.GetAdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-03", admin.Leave.Month)
	assert.Equal(t, int64(len(demoPeople)), admin.Headcount.Total)

	self, err := svc.GetEmployeeDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DemoEmployeeID, self.EmployeeID)
	assert.Equal(t, 2025, self.Year)
	require.NotNil(t, self.LatestPayslip)
	assert.Equal(t, 3, self.LatestPayslip.PeriodMonth)
}

func TestDemoUserService(t *testing.T) {
	ctx := context.Background()
	svc := DemoUserService{}

	all, total, err := svc.List(ctx, user.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(demoPeople)), total)
	assert.Len(t, all, len(demoPeople))

	role := string(user.RoleEmployee)
	employees, _, err := svc.List(ctx, user.UserFilter{Role: &role})
	require.NoError(t, err)
	assert.Len(t, employees, 2)

	got, err := svc.Get(ctx, DemoUserID)
	require.NoError(t, err)
	assert.Equal(t, DemoEmail, got.Email)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = svc.Create(ctx, user.CreateUserRequest{})
	assert.ErrorIs(t, err, demo.ErrDemoReadOnly)
	assert.ErrorIs(t, svc.UpdateRole(ctx, user.UpdateUserRoleRequest{}), demo.ErrDemoReadOnly)
}

func TestDemoEmployeeService_Paginates(t *testing.T) {
	ctx := context.Background()
	svc := DemoEmployeeService{}

	page, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Page: 2, Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(len(demoPeople)), page.TotalCount)
	assert.Len(t, page.Employees, 2)

	beyond, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Page: 5, Limit: 4})
	require.NoError(t, err)
	assert.Empty(t, beyond.Employees)

	search := "rina"
	found, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Search: &search})
	require.NoError(t, err)
	require.Len(t, found.Employees, 1)
	assert.Equal(t, "EMP-005", found.Employees[0].EmployeeCode)

	_, err = svc.GetEmployee(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, svc.TerminateEmployee(ctx, DemoEmployeeID), demo.ErrDemoReadOnly)
}

func TestDemoSettingsService(t *testing.T) {
	svc := DemoSettingsService{}

	got, err := svc.GetSecurity(context.Background())
	require.NoError(t, err)
	assert.True(t, got.RequireMFA)
	assert.Nil(t, got.UpdatedAt)
}
