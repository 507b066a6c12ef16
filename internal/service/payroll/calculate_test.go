package payroll

import (
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestApplyAdvances_StaysWithinGross(t *testing.T) {
	record := payroll.PayrollRecord{BaseSalary: money("1000"), TotalAllowances: money("200")}
	advances := []payroll.SalaryAdvance{
		{ID: "a1", Amount: money("500")},
		{ID: "a2", Amount: money("800")},
		{ID: "a3", Amount: money("700")},
	}

	ids := applyAdvances(&record, advances)

	assert.Equal(t, []string{"a1", "a3"}, ids)
	assert.True(t, money("1200").Equal(record.AdvanceDeduction))
}

func TestComputeNetPay(t *testing.T) {
	tests := []struct {
		name    string
		record  payroll.PayrollRecord
		rate    string
		wantTax string
		wantNet string
	}{
		{
			name: "with advance and deductions",
			record: payroll.PayrollRecord{
				BaseSalary: money("5000"), TotalAllowances: money("500"),
				TotalDeductions: money("100"), AdvanceDeduction: money("1000"),
			},
			rate: "0.05", wantTax: "275", wantNet: "4125",
		},
		{
			name:    "tax rounds to cents",
			record:  payroll.PayrollRecord{BaseSalary: money("3333.33")},
			rate:    "0.075",
			wantTax: "250", wantNet: "3083.33",
		},
		{
			name:    "zero rate",
			record:  payroll.PayrollRecord{BaseSalary: money("100")},
			rate:    "0",
			wantTax: "0", wantNet: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.record
			computeNetPay(&r, money(tt.rate))
			assert.True(t, money(tt.wantTax).Equal(r.Tax), "tax %s", r.Tax)
			assert.True(t, money(tt.wantNet).Equal(r.NetPay), "net %s", r.NetPay)
		})
	}
}

func TestWithinAdvanceLimit(t *testing.T) {
	assert.True(t, withinAdvanceLimit(money("2500"), money("5000")))
	assert.False(t, withinAdvanceLimit(money("2500.01"), money("5000")))
}
