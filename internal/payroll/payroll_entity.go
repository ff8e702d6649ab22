package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusInProgress = "IN_PROGRESS"
	StatusPaid       = "PAID"
	StatusSuspended  = "SUSPENDED"
	StatusCancelled  = "CANCELLED"
)

// Payroll is one person's pay for one month. Amounts are integer cents;
// the unique index makes a second sheet for the same month a conflict,
// never a silent overwrite.
type Payroll struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_person_month"`
	Month    string    `gorm:"type:varchar(7);not null;uniqueIndex:uq_payroll_person_month"`

	GrossCents      int64 `gorm:"not null"`
	DeductionsCents int64 `gorm:"not null;default:0"`
	NetCents        int64 `gorm:"not null"`

	Status string `gorm:"type:varchar(20);not null;default:'IN_PROGRESS'"`
	Notes  string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
