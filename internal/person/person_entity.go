package person

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	KindTeaching       = "TEACHING"
	KindAdminTechnical = "ADMIN_TECHNICAL"
	KindContract       = "CONTRACT"
)

type Person struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	// UserID links the person to their login account, when they have one.
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex;constraint:OnDelete:SET NULL"`

	// Identity
	FirstName     string    `gorm:"type:varchar(100);not null"`
	LastName      string    `gorm:"type:varchar(100);not null"`
	BirthDate     time.Time `gorm:"type:date;not null"`
	BirthPlace    string    `gorm:"type:varchar(100)"`
	NationalID    string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_person_national_id"`
	Nationality   string    `gorm:"type:varchar(100)"`
	Gender        string    `gorm:"type:varchar(10);not null"`
	MaritalStatus string    `gorm:"type:varchar(50)"`
	Address       string    `gorm:"type:text"`
	FatherName    string    `gorm:"type:varchar(100)"`

	// Education
	LastDiploma    string `gorm:"type:varchar(200)"`
	DiplomaCountry string `gorm:"type:varchar(100)"`
	DiplomaYear    int
	Specialty      string `gorm:"type:varchar(200)"`

	// Employment
	Function       string    `gorm:"type:varchar(100)"`
	EmploymentKind string    `gorm:"type:varchar(20);not null;index"`
	EmployeeNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_person_employee_number"`
	HireDate       time.Time `gorm:"type:date;not null"`

	DepartmentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	StructureID  *uuid.UUID `gorm:"type:uuid"`

	// ManagerID is a self-reference; deleting the manager nulls it instead
	// of cascading.
	ManagerID *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL"`

	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
