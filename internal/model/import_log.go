package model

import (
	"time"

	"github.com/google/uuid"
)

// ImportLog is the audit entry written once per successful import:
// who uploaded which file and what the upsert did. Skipped counts rows the
// importer dropped for a missing business key — reported only in aggregate.
type ImportLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	UploadedByID   uuid.UUID `gorm:"type:uuid;not null"`
	Filename       string    `gorm:"not null"`
	TotalRows      int       `gorm:"not null"`
	Created        int       `gorm:"not null"`
	Updated        int       `gorm:"not null"`
	Skipped        int       `gorm:"not null"`
	CreatedAt      time.Time

	UploadedBy *User `gorm:"foreignKey:UploadedByID"`
}

func (ImportLog) TableName() string { return "import_logs" }
