package payroll

import (
	"time"

	"github.com/google/uuid"
)

type CreatePayrollRequest struct {
	PersonID        uuid.UUID `json:"person_id" binding:"required"`
	Month           string    `json:"month" binding:"required,len=7"`
	GrossCents      int64     `json:"gross_cents" binding:"required,min=0"`
	DeductionsCents int64     `json:"deductions_cents" binding:"omitempty,min=0"`
	Notes           string    `json:"notes" binding:"omitempty,max=2000"`
}

type UpdatePayrollRequest struct {
	GrossCents      *int64  `json:"gross_cents" binding:"omitempty,min=0"`
	DeductionsCents *int64  `json:"deductions_cents" binding:"omitempty,min=0"`
	Status          *string `json:"status" binding:"omitempty,oneof=IN_PROGRESS PAID SUSPENDED CANCELLED"`
	Notes           *string `json:"notes" binding:"omitempty,max=2000"`
}

type PayrollFilter struct {
	PersonID *uuid.UUID `form:"person_id"`
	Month    string     `form:"month" binding:"omitempty,len=7"`
	Status   string     `form:"status" binding:"omitempty,oneof=IN_PROGRESS PAID SUSPENDED CANCELLED"`
	Page     int        `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type PayrollResponse struct {
	ID              uuid.UUID `json:"id"`
	PersonID        uuid.UUID `json:"person_id"`
	Month           string    `json:"month"`
	GrossCents      int64     `json:"gross_cents"`
	DeductionsCents int64     `json:"deductions_cents"`
	NetCents        int64     `json:"net_cents"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type MonthlySummary struct {
	Month                string `json:"month"`
	Count                int64  `json:"count"`
	TotalGrossCents      int64  `json:"total_gross_cents"`
	TotalDeductionsCents int64  `json:"total_deductions_cents"`
	TotalNetCents        int64  `json:"total_net_cents"`
}

// payslipInfo joins the payroll row with the person identity printed on
// the payslip document.
type payslipInfo struct {
	Payroll        Payroll
	FirstName      string
	LastName       string
	EmployeeNumber string
	Function       string
}

func toResponse(p *Payroll) PayrollResponse {
	return PayrollResponse{
		ID:              p.ID,
		PersonID:        p.PersonID,
		Month:           p.Month,
		GrossCents:      p.GrossCents,
		DeductionsCents: p.DeductionsCents,
		NetCents:        p.NetCents,
		Status:          p.Status,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}
}

func toResponseList(payrolls []Payroll) []PayrollResponse {
	out := make([]PayrollResponse, 0, len(payrolls))
	for i := range payrolls {
		out = append(out, toResponse(&payrolls[i]))
	}
	return out
}
