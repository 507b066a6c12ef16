package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Payslip is the printable view of one payroll record.
type Payslip struct {
	CompanyName      string
	EmployeeName     string
	EmployeeCode     string
	Position         string
	Period           string // YYYY-MM
	Status           string
	BaseSalary       decimal.Decimal
	Allowances       decimal.Decimal
	Deductions       decimal.Decimal
	AdvanceDeduction decimal.Decimal
	Tax              decimal.Decimal
	NetPay           decimal.Decimal
}

// RenderPayslip returns an A4 PDF document.
func RenderPayslip(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", p.EmployeeCode, p.Period), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, p.CompanyName)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "Payslip "+p.Period)
	pdf.Ln(12)

	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", p.EmployeeName, p.EmployeeCode))
	pdf.Ln(7)
	if p.Position != "" {
		pdf.Cell(0, 7, "Position: "+p.Position)
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, "Status: "+p.Status)
	pdf.Ln(11)

	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Base salary", p.BaseSalary},
		{"Allowances", p.Allowances},
		{"Deductions", p.Deductions.Neg()},
		{"Salary advance repayment", p.AdvanceDeduction.Neg()},
		{"Tax", p.Tax.Neg()},
	}
	for _, row := range rows {
		pdf.CellFormat(120, 8, row.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, row.value.StringFixed(2), "B", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 10, "Net pay", "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 10, p.NetPay.StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
