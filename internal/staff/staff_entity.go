package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Teaching grades, ordered by seniority.
const (
	GradeAssistant         = "ASSISTANT"
	GradeAssistantLecturer = "ASSISTANT_LECTURER"
	GradeLecturer          = "LECTURER"
	GradeSeniorLecturer    = "SENIOR_LECTURER"
	GradeProfessor         = "PROFESSOR"
)

const (
	ContractFixedTerm = "FIXED_TERM"
	ContractOpenEnded = "OPEN_ENDED"
	ContractSeasonal  = "SEASONAL"
)

// TeachingStaff extends a person whose department is TEACHING. The person
// id is the primary key: one specialization row per person.
type TeachingStaff struct {
	PersonID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Grade          string    `gorm:"type:varchar(50);not null"`
	ResearchDomain string    `gorm:"type:varchar(200)"`
	WeeklyHours    int       `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type AdminTechnicalStaff struct {
	PersonID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category       string    `gorm:"type:varchar(10);not null"`
	JobTitle       string    `gorm:"type:varchar(100);not null"`
	OfficeLocation string    `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type ContractStaff struct {
	PersonID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractType  string    `gorm:"type:varchar(20);not null"`
	ContractStart time.Time `gorm:"type:date;not null"`
	ContractEnd   time.Time `gorm:"type:date;not null;index"`
	Employer      string    `gorm:"type:varchar(200)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
