package pdf

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPayslip(t *testing.T) {
	out, err := RenderPayslip(Payslip{
		CompanyName:  "Acme",
		EmployeeName: "Ana",
		EmployeeCode: "EMP-001",
		Period:       "2025-01",
		Status:       "PROCESSED",
		BaseSalary:   decimal.NewFromInt(5000),
		Allowances:   decimal.NewFromInt(500),
		Tax:          decimal.NewFromInt(275),
		NetPay:       decimal.NewFromInt(5225),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
