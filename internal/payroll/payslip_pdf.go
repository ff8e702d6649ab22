package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// renderPayslip produces the one-page payslip document for a payroll row.
func renderPayslip(info *payslipInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s (%s)", info.FirstName, info.LastName, info.EmployeeNumber))
	pdf.Ln(7)
	if info.Function != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Function: %s", info.Function))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", info.Payroll.Month))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", info.Payroll.Status))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", formatCents(info.Payroll.GrossCents)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", formatCents(info.Payroll.DeductionsCents)))
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", formatCents(info.Payroll.NetCents)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
