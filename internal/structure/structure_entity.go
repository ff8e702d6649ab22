package structure

import (
	"time"

	"github.com/google/uuid"
)

type Structure struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(255);not null"`
	Type string    `gorm:"type:varchar(100);not null"`

	Description string `gorm:"type:text"`

	// Deleting a parent removes the whole subtree.
	ParentID *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:CASCADE"`

	// ResponsibleID references the person in charge; nulled on person delete.
	ResponsibleID *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL"`

	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
