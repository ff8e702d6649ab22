package staff

import (
	"time"

	"github.com/google/uuid"
)

type UpsertTeachingStaffRequest struct {
	Grade          string `json:"grade" binding:"required,oneof=ASSISTANT ASSISTANT_LECTURER LECTURER SENIOR_LECTURER PROFESSOR"`
	ResearchDomain string `json:"research_domain" binding:"omitempty,max=200"`
	WeeklyHours    int    `json:"weekly_hours" binding:"omitempty,min=0,max=60"`
}

type UpsertAdminTechnicalStaffRequest struct {
	Category       string `json:"category" binding:"required,oneof=A B C"`
	JobTitle       string `json:"job_title" binding:"required,max=100"`
	OfficeLocation string `json:"office_location" binding:"omitempty,max=100"`
}

type UpsertContractStaffRequest struct {
	ContractType  string `json:"contract_type" binding:"required,oneof=FIXED_TERM OPEN_ENDED SEASONAL"`
	ContractStart string `json:"contract_start" binding:"required"`
	ContractEnd   string `json:"contract_end" binding:"required"`
	Employer      string `json:"employer" binding:"omitempty,max=200"`
}

type TeachingStaffResponse struct {
	PersonID       uuid.UUID `json:"person_id"`
	Grade          string    `json:"grade"`
	ResearchDomain string    `json:"research_domain,omitempty"`
	WeeklyHours    int       `json:"weekly_hours"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AdminTechnicalStaffResponse struct {
	PersonID       uuid.UUID `json:"person_id"`
	Category       string    `json:"category"`
	JobTitle       string    `json:"job_title"`
	OfficeLocation string    `json:"office_location,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ContractStaffResponse struct {
	PersonID      uuid.UUID `json:"person_id"`
	ContractType  string    `json:"contract_type"`
	ContractStart string    `json:"contract_start"`
	ContractEnd   string    `json:"contract_end"`
	Employer      string    `json:"employer,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type GradeCount struct {
	Grade string `json:"grade"`
	Count int64  `json:"count"`
}

type ExpiringContract struct {
	PersonID       uuid.UUID `json:"person_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	EmployeeNumber string    `json:"employee_number"`
	ContractType   string    `json:"contract_type"`
	ContractEnd    time.Time `json:"contract_end"`
}

func toTeachingResponse(t *TeachingStaff) TeachingStaffResponse {
	return TeachingStaffResponse{
		PersonID:       t.PersonID,
		Grade:          t.Grade,
		ResearchDomain: t.ResearchDomain,
		WeeklyHours:    t.WeeklyHours,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toAdminTechnicalResponse(a *AdminTechnicalStaff) AdminTechnicalStaffResponse {
	return AdminTechnicalStaffResponse{
		PersonID:       a.PersonID,
		Category:       a.Category,
		JobTitle:       a.JobTitle,
		OfficeLocation: a.OfficeLocation,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toContractResponse(c *ContractStaff) ContractStaffResponse {
	return ContractStaffResponse{
		PersonID:      c.PersonID,
		ContractType:  c.ContractType,
		ContractStart: c.ContractStart.Format("2006-01-02"),
		ContractEnd:   c.ContractEnd.Format("2006-01-02"),
		Employer:      c.Employer,
		UpdatedAt:     c.UpdatedAt,
	}
}
