package recruitment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOpen      = "OPEN"
	StatusClosed    = "CLOSED"
	StatusFilled    = "FILLED"
	StatusCancelled = "CANCELLED"
)

const (
	CandidateReceived    = "RECEIVED"
	CandidateUnderReview = "UNDER_REVIEW"
	CandidateQualified   = "QUALIFIED"
	CandidateInterview   = "INTERVIEW"
	CandidateAccepted    = "ACCEPTED"
	CandidateRejected    = "REJECTED"
)

type Recruitment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DepartmentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	StructureID  *uuid.UUID `gorm:"type:uuid"`

	JobTitle       string    `gorm:"type:varchar(200);not null"`
	EmploymentKind string    `gorm:"type:varchar(20);not null"`
	Description    string    `gorm:"type:text"`
	Deadline       time.Time `gorm:"type:date;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'OPEN';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type Candidate struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecruitmentID uuid.UUID `gorm:"type:uuid;not null;index"`

	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Email     string `gorm:"type:varchar(255);not null"`
	Phone     string `gorm:"type:varchar(30)"`
	Notes     string `gorm:"type:text"`

	Status string `gorm:"type:varchar(20);not null;default:'RECEIVED';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// candidateTransitions is the hiring pipeline. Rejection is reachable
// from any live stage; accepted and rejected are terminal.
var candidateTransitions = map[string][]string{
	CandidateReceived:    {CandidateUnderReview, CandidateRejected},
	CandidateUnderReview: {CandidateQualified, CandidateRejected},
	CandidateQualified:   {CandidateInterview, CandidateRejected},
	CandidateInterview:   {CandidateAccepted, CandidateRejected},
	CandidateAccepted:    {},
	CandidateRejected:    {},
}

func candidateTransitionAllowed(from, to string) bool {
	for _, next := range candidateTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
