package payroll

import (
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// advanceLimitRatio caps a salary advance at half of the base salary.
var advanceLimitRatio = decimal.NewFromFloat(0.5)

// applyAdvances fills AdvanceDeduction from approved advances, oldest first, while the
// running total stays within gross. It returns the ids of the advances consumed.
func applyAdvances(record *payroll.PayrollRecord, advances []payroll.SalaryAdvance) []string {
	gross := record.Gross()
	total := decimal.Zero
	ids := make([]string, 0, len(advances))

	for _, a := range advances {
		next := total.Add(a.Amount)
		if next.GreaterThan(gross) {
			continue
		}
		total = next
		ids = append(ids, a.ID)
	}

	record.AdvanceDeduction = total
	return ids
}

// computeNetPay sets Tax and NetPay. Tax is taxRate * gross rounded to cents.
func computeNetPay(record *payroll.PayrollRecord, taxRate decimal.Decimal) {
	gross := record.Gross()
	record.Tax = gross.Mul(taxRate).Round(2)
	record.NetPay = gross.
		Sub(record.TotalDeductions).
		Sub(record.AdvanceDeduction).
		Sub(record.Tax)
}

func withinAdvanceLimit(amount, baseSalary decimal.Decimal) bool {
	return amount.LessThanOrEqual(baseSalary.Mul(advanceLimitRatio))
}
