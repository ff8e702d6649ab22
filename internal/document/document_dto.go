package document

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentForm struct {
	PersonID *uuid.UUID `form:"person_id"`
	Type     string     `form:"type" binding:"required,oneof=CONTRACT DIPLOMA MEDICAL ADMINISTRATIVE OTHER"`
}

type DocumentFilter struct {
	PersonID *uuid.UUID `form:"person_id"`
	Type     string     `form:"type" binding:"omitempty,oneof=CONTRACT DIPLOMA MEDICAL ADMINISTRATIVE OTHER"`
	Page     int        `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

type DocumentResponse struct {
	ID          uuid.UUID  `json:"id"`
	PersonID    uuid.UUID  `json:"person_id"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	ContentType string     `json:"content_type,omitempty"`
	SizeBytes   int64      `json:"size_bytes"`
	UploadedBy  *uuid.UUID `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toResponse(d *Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		PersonID:    d.PersonID,
		Type:        d.Type,
		Name:        d.Name,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		UploadedBy:  d.UploadedBy,
		CreatedAt:   d.CreatedAt,
	}
}

func toResponseList(docs []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, toResponse(&docs[i]))
	}
	return out
}
