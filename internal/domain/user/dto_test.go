package user

import (
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	valid := CreateUserRequest{Email: "hr@acme.test", Password: "s3cretpass", Role: "HR"}
	assert.NoError(t, valid.Validate())

	invalid := CreateUserRequest{Email: "nope", Role: "owner"}
	err := invalid.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	m := errs.ToMap()
	assert.Equal(t, "invalid email format", m["email"])
	assert.Equal(t, "password is required", m["password"])
	assert.Equal(t, "invalid role", m["role"])
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionSettingsManage))
	assert.False(t, HasPermission(RoleHR, PermissionSettingsManage))
	assert.True(t, HasPermission(RoleBranchManager, PermissionLeaveApprove))
	assert.False(t, HasPermission(RoleEmployee, PermissionLeaveApprove))
	assert.True(t, HasPermission(RoleEmployee, PermissionLeaveCreate))
	assert.False(t, HasPermission(Role("ghost"), PermissionLeaveCreate))
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range AllRoles {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("employee").IsValid())
}
