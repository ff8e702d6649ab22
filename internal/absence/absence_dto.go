package absence

import (
	"time"

	"github.com/google/uuid"
)

type CreateAbsenceRequest struct {
	PersonID  *uuid.UUID `json:"person_id" binding:"omitempty"`
	Type      string     `json:"type" binding:"required,oneof=ANNUAL SICK MATERNITY UNPAID EXCEPTIONAL TRAINING"`
	StartDate string     `json:"start_date" binding:"required"`
	EndDate   string     `json:"end_date" binding:"required"`
	Reason    string     `json:"reason" binding:"omitempty,max=2000"`
}

type RejectAbsenceRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=2000"`
}

type BulkDecideRequest struct {
	AbsenceIDs []uuid.UUID `json:"absence_ids" binding:"required,min=1,max=100"`
	Decision   string      `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Reason     string      `json:"reason" binding:"omitempty,max=2000"`
}

type AbsenceFilter struct {
	PersonID *uuid.UUID `form:"person_id"`
	Status   string     `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	Type     string     `form:"type" binding:"omitempty,oneof=ANNUAL SICK MATERNITY UNPAID EXCEPTIONAL TRAINING"`
	From     string     `form:"from"`
	To       string     `form:"to"`
	Page     int        `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type PlanningFilter struct {
	From           string `form:"from" binding:"required"`
	To             string `form:"to" binding:"required"`
	IncludePending bool   `form:"include_pending"`
}

type AbsenceResponse struct {
	ID             uuid.UUID  `json:"id"`
	PersonID       uuid.UUID  `json:"person_id"`
	Type           string     `json:"type"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	DurationDays   int        `json:"duration_days"`
	Reason         string     `json:"reason,omitempty"`
	Status         string     `json:"status"`
	DecisionReason string     `json:"decision_reason,omitempty"`
	DecidedBy      *uuid.UUID `json:"decided_by,omitempty"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// BulkDecideRowResult reports the outcome for one absence of a bulk
// decision. Failures never abort the rest of the batch.
type BulkDecideRowResult struct {
	AbsenceID uuid.UUID `json:"absence_id"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	ErrorCode string    `json:"error_code,omitempty"`
}

type BulkDecideResponse struct {
	Requested int                   `json:"requested"`
	Processed int                   `json:"processed"`
	Failed    int                   `json:"failed"`
	Results   []BulkDecideRowResult `json:"results"`
}

type TypeCount struct {
	Type      string `json:"type"`
	Count     int64  `json:"count"`
	TotalDays int64  `json:"total_days"`
}

type PlanningAbsentee struct {
	PersonID  uuid.UUID `json:"person_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Type      string    `json:"type"`
}

type PlanningDay struct {
	Date        string             `json:"date"`
	AbsentCount int64              `json:"absent_count"`
	Absentees   []PlanningAbsentee `json:"absentees"`
}

func toResponse(a *Absence) AbsenceResponse {
	return AbsenceResponse{
		ID:             a.ID,
		PersonID:       a.PersonID,
		Type:           a.Type,
		StartDate:      a.StartDate.Format("2006-01-02"),
		EndDate:        a.EndDate.Format("2006-01-02"),
		DurationDays:   a.DurationDays(),
		Reason:         a.Reason,
		Status:         a.Status,
		DecisionReason: a.DecisionReason,
		DecidedBy:      a.DecidedBy,
		DecidedAt:      a.DecidedAt,
		CreatedAt:      a.CreatedAt,
	}
}

func toResponseList(absences []Absence) []AbsenceResponse {
	out := make([]AbsenceResponse, 0, len(absences))
	for i := range absences {
		out = append(out, toResponse(&absences[i]))
	}
	return out
}
