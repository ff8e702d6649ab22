package person

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// renderWorkCertificate produces the one-page employment attestation for a
// person.
func renderWorkCertificate(p *Person) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Work Certificate")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, fmt.Sprintf(
		"This is to certify that %s %s, employee number %s, has been employed since %s.",
		p.FirstName, p.LastName, p.EmployeeNumber, p.HireDate.Format("2006-01-02"),
	), "", "L", false)
	pdf.Ln(4)

	if p.Function != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Function: %s", p.Function))
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Employment kind: %s", p.EmploymentKind))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Issued on %s.", time.Now().Format("2006-01-02")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
