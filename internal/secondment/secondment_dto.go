package secondment

import (
	"time"

	"github.com/google/uuid"
)

type CreateSecondmentRequest struct {
	PersonID               uuid.UUID `json:"person_id" binding:"required"`
	OriginStructureID      uuid.UUID `json:"origin_structure_id" binding:"required"`
	DestinationStructureID uuid.UUID `json:"destination_structure_id" binding:"required"`
	StartDate              string    `json:"start_date" binding:"required"`
	EndDate                *string   `json:"end_date" binding:"omitempty"`
	Reason                 string    `json:"reason" binding:"omitempty,max=2000"`
}

type SecondmentFilter struct {
	PersonID *uuid.UUID `form:"person_id"`
	Status   string     `form:"status" binding:"omitempty,oneof=IN_PROGRESS COMPLETED CANCELLED"`
	Page     int        `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type SecondmentResponse struct {
	ID                     uuid.UUID `json:"id"`
	PersonID               uuid.UUID `json:"person_id"`
	OriginStructureID      uuid.UUID `json:"origin_structure_id"`
	DestinationStructureID uuid.UUID `json:"destination_structure_id"`
	StartDate              string    `json:"start_date"`
	EndDate                *string   `json:"end_date,omitempty"`
	Reason                 string    `json:"reason,omitempty"`
	Status                 string    `json:"status"`
	CreatedAt              time.Time `json:"created_at"`
}

func toResponse(s *Secondment) SecondmentResponse {
	resp := SecondmentResponse{
		ID:                     s.ID,
		PersonID:               s.PersonID,
		OriginStructureID:      s.OriginStructureID,
		DestinationStructureID: s.DestinationStructureID,
		StartDate:              s.StartDate.Format("2006-01-02"),
		Reason:                 s.Reason,
		Status:                 s.Status,
		CreatedAt:              s.CreatedAt,
	}
	if s.EndDate != nil {
		v := s.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	return resp
}

func toResponseList(secondments []Secondment) []SecondmentResponse {
	out := make([]SecondmentResponse, 0, len(secondments))
	for i := range secondments {
		out = append(out, toResponse(&secondments[i]))
	}
	return out
}
