package recruitment

import (
	"time"

	"github.com/google/uuid"
)

type CreateRecruitmentRequest struct {
	DepartmentID   uuid.UUID  `json:"department_id" binding:"required"`
	StructureID    *uuid.UUID `json:"structure_id" binding:"omitempty"`
	JobTitle       string     `json:"job_title" binding:"required,min=3,max=200"`
	EmploymentKind string     `json:"employment_kind" binding:"required,oneof=TEACHING ADMIN_TECHNICAL CONTRACT"`
	Description    string     `json:"description" binding:"omitempty"`
	Deadline       string     `json:"deadline" binding:"required"`
}

type UpdateRecruitmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN CLOSED FILLED CANCELLED"`
}

type RecruitmentFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=OPEN CLOSED FILLED CANCELLED"`
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type RecruitmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	DepartmentID   uuid.UUID  `json:"department_id"`
	StructureID    *uuid.UUID `json:"structure_id,omitempty"`
	JobTitle       string     `json:"job_title"`
	EmploymentKind string     `json:"employment_kind"`
	Description    string     `json:"description,omitempty"`
	Deadline       string     `json:"deadline"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CreateCandidateRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=100"`
	LastName  string `json:"last_name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,max=30"`
	Notes     string `json:"notes" binding:"omitempty,max=2000"`
}

type MoveCandidateRequest struct {
	Status string `json:"status" binding:"required,oneof=UNDER_REVIEW QUALIFIED INTERVIEW ACCEPTED REJECTED"`
}

type CandidateResponse struct {
	ID            uuid.UUID `json:"id"`
	RecruitmentID uuid.UUID `json:"recruitment_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toRecruitmentResponse(r *Recruitment) RecruitmentResponse {
	return RecruitmentResponse{
		ID:             r.ID,
		DepartmentID:   r.DepartmentID,
		StructureID:    r.StructureID,
		JobTitle:       r.JobTitle,
		EmploymentKind: r.EmploymentKind,
		Description:    r.Description,
		Deadline:       r.Deadline.Format("2006-01-02"),
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
	}
}

func toRecruitmentResponseList(recruitments []Recruitment) []RecruitmentResponse {
	out := make([]RecruitmentResponse, 0, len(recruitments))
	for i := range recruitments {
		out = append(out, toRecruitmentResponse(&recruitments[i]))
	}
	return out
}

func toCandidateResponse(c *Candidate) CandidateResponse {
	return CandidateResponse{
		ID:            c.ID,
		RecruitmentID: c.RecruitmentID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		Phone:         c.Phone,
		Notes:         c.Notes,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
	}
}

func toCandidateResponseList(candidates []Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for i := range candidates {
		out = append(out, toCandidateResponse(&candidates[i]))
	}
	return out
}
