package master

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBranches struct {
	branch.BranchRepository
	byCode map[string]branch.Branch
}

func (m *memBranches) ExistsByCode(_ context.Context, tenantID, code string) (bool, error) {
	b, ok := m.byCode[code]
	return ok && b.TenantID == tenantID, nil
}

func (m *memBranches) Create(_ context.Context, b branch.Branch) (branch.Branch, error) {
	b.ID = "br-" + b.Code
	m.byCode[b.Code] = b
	return b, nil
}

type memDepartments struct {
	department.DepartmentRepository
	items   map[string]department.Department
	renamed string
}

func (m *memDepartments) GetByID(_ context.Context, tenantID, id string) (department.Department, error) {
	d, ok := m.items[id]
	if !ok || d.TenantID != tenantID {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (m *memDepartments) ExistsByName(_ context.Context, tenantID, name string) (bool, error) {
	for _, d := range m.items {
		if d.TenantID == tenantID && d.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memDepartments) Rename(_ context.Context, _, id, name string) error {
	m.renamed = name
	d := m.items[id]
	d.Name = name
	m.items[id] = d
	return nil
}

type memUsers struct {
	user.UserRepository
	users map[string]user.User
}

func (m memUsers) GetByID(_ context.Context, tenantID, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok || u.TenantID != tenantID {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

const (
	managerID  = "018f2a00-0000-7000-8000-0000000000b1"
	inactiveID = "018f2a00-0000-7000-8000-0000000000b2"
)

func hrCtx() context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UserID: "u-hr", TenantID: "t1", Role: user.RoleHR})
}

func newService(t *testing.T) (*MasterServiceImpl, *memBranches, *memDepartments, *cache.Cache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := cache.NewCache(client, time.Minute)

	branches := &memBranches{byCode: map[string]branch.Branch{
		"HQ": {ID: "br-HQ", TenantID: "t1", Code: "HQ", Name: "Headquarters"},
	}}
	departments := &memDepartments{items: map[string]department.Department{
		"d-1": {ID: "d-1", TenantID: "t1", Name: "Engineering"},
		"d-2": {ID: "d-2", TenantID: "t1", Name: "Finance"},
	}}
	users := memUsers{users: map[string]user.User{
		managerID:  {ID: managerID, TenantID: "t1", IsActive: true},
		inactiveID: {ID: inactiveID, TenantID: "t1", IsActive: false},
	}}
	return NewMasterService(branches, departments, users, c), branches, departments, c
}

func TestCreateBranch(t *testing.T) {
	svc, branches, _, c := newService(t)
	ctx := hrCtx()

	before, err := c.Version(ctx, "t1")
	require.NoError(t, err)

	manager := managerID
	created, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Surabaya", Code: " sby ", ManagerUserID: &manager})
	require.NoError(t, err)
	assert.Equal(t, "SBY", created.Code)
	assert.Contains(t, branches.byCode, "SBY")

	after, err := c.Version(ctx, "t1")
	require.NoError(t, err)
	assert.Greater(t, after, before, "dashboard cache must be invalidated")
}

func TestCreateBranch_Rejects(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := hrCtx()

	_, err := svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Head office", Code: "hq"})
	assert.ErrorIs(t, err, branch.ErrBranchCodeExists)

	inactive := inactiveID
	_, err = svc.CreateBranch(ctx, branch.CreateBranchRequest{Name: "Bandung", Code: "BDG", ManagerUserID: &inactive})
	assert.ErrorIs(t, err, branch.ErrManagerNotFound)

	_, err = svc.CreateBranch(ctx, branch.CreateBranchRequest{Code: "BDG"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.CreateBranch(context.Background(), branch.CreateBranchRequest{Name: "Bandung", Code: "BDG"})
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestUpdateDepartment(t *testing.T) {
	svc, _, departments, _ := newService(t)
	ctx := hrCtx()

	_, err := svc.UpdateDepartment(ctx, department.UpsertDepartmentRequest{ID: "d-1", Name: "Finance"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	got, err := svc.UpdateDepartment(ctx, department.UpsertDepartmentRequest{ID: "d-1", Name: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.Name)
	assert.Empty(t, departments.renamed, "unchanged name must not be written")

	got, err = svc.UpdateDepartment(ctx, department.UpsertDepartmentRequest{ID: "d-1", Name: "Platform"})
	require.NoError(t, err)
	assert.Equal(t, "Platform", got.Name)
	assert.Equal(t, "Platform", departments.renamed)

	_, err = svc.UpdateDepartment(ctx, department.UpsertDepartmentRequest{ID: "missing", Name: "Ops"})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}
