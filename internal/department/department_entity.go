package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(100);not null"`
	Kind string    `gorm:"type:varchar(20);not null;index"`

	// ChiefID references the user account leading this department. A chief
	// leads at most one department; uq_department_chief (partial unique
	// index on chief_id where chief_id is not null) backs this.
	ChiefID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_department_chief"`

	Description string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
