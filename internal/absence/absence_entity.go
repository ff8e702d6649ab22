package absence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	TypeAnnual      = "ANNUAL"
	TypeSick        = "SICK"
	TypeMaternity   = "MATERNITY"
	TypeUnpaid      = "UNPAID"
	TypeExceptional = "EXCEPTIONAL"
	TypeTraining    = "TRAINING"
)

type Absence struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonID uuid.UUID `gorm:"type:uuid;not null;index"`

	Type      string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text"`

	Status         string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DecisionReason string     `gorm:"type:text"`
	DecidedBy      *uuid.UUID `gorm:"type:uuid"`
	DecidedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// DurationDays is inclusive of both endpoints: a one-day absence starts
// and ends on the same date and counts as one day.
func (a *Absence) DurationDays() int {
	return int(a.EndDate.Sub(a.StartDate).Hours()/24) + 1
}
