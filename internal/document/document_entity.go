package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeContract       = "CONTRACT"
	TypeDiploma        = "DIPLOMA"
	TypeMedical        = "MEDICAL"
	TypeAdministrative = "ADMINISTRATIVE"
	TypeOther          = "OTHER"
)

// Document is file metadata; the bytes live in the file store under
// StorageKey.
type Document struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonID uuid.UUID `gorm:"type:uuid;not null;index"`

	Type        string `gorm:"type:varchar(20);not null"`
	Name        string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(100)"`
	SizeBytes   int64  `gorm:"not null"`
	StorageKey  string `gorm:"type:varchar(255);not null"`

	UploadedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
