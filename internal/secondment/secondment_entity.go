package secondment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// Secondment is a temporary move of a person from one structure to
// another. Chiefs see it when either structure, or the person moved,
// belongs to their department.
type Secondment struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonID uuid.UUID `gorm:"type:uuid;not null;index"`

	OriginStructureID      uuid.UUID `gorm:"type:uuid;not null;index"`
	DestinationStructureID uuid.UUID `gorm:"type:uuid;not null;index"`

	StartDate time.Time  `gorm:"type:date;not null"`
	EndDate   *time.Time `gorm:"type:date"`
	Reason    string     `gorm:"type:text"`

	Status string `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
