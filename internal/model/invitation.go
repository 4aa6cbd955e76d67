package model

import (
	"time"

	"github.com/google/uuid"
)

// Invitation is a pending offer to join an organization, delivered by email.
// Token is the opaque secret embedded in the accept link.
type Invitation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Email          string    `gorm:"not null"`
	Role           string    `gorm:"type:varchar(20);not null"`
	Token          string    `gorm:"uniqueIndex;not null"`
	InvitedByID    uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt      time.Time `gorm:"not null"`
	AcceptedAt     *time.Time
	CreatedAt      time.Time

	Organization *Organization `gorm:"foreignKey:OrganizationID"`
	InvitedBy    *User         `gorm:"foreignKey:InvitedByID"`
}

func (Invitation) TableName() string { return "invitations" }
