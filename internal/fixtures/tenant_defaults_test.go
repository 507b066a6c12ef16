package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaultLeaveTypes(t *testing.T) {
	defaults := GetDefaultLeaveTypes("t1", 2025)

	codes := map[string]bool{}
	for _, d := range defaults {
		assert.False(t, codes[d.Type.Code], "duplicate code %s", d.Type.Code)
		codes[d.Type.Code] = true

		assert.Equal(t, "t1", d.Type.TenantID)
		assert.Equal(t, "t1", d.Policy.TenantID)
		assert.True(t, d.Policy.IsActive)
		assert.Equal(t, 2025, d.Policy.EffectiveDate.Year())
		assert.LessOrEqual(t, len(d.Type.Code), 20)
		if d.Policy.MaxDaysPerRequest > 0 && d.Policy.MaxDaysPerYear > 0 {
			assert.LessOrEqual(t, d.Policy.MaxDaysPerRequest, d.Policy.MaxDaysPerYear, d.Type.Code)
		}
	}
	assert.True(t, codes["ANNUAL"])
}

func TestDemoClaims(t *testing.T) {
	claims := DemoClaims()

	assert.True(t, claims.IsDemo)
	assert.Equal(t, DemoTenantID, claims.TenantID)
	if assert.NotNil(t, claims.EmployeeID) {
		assert.Equal(t, DemoEmployeeID, *claims.EmployeeID)
	}
}
