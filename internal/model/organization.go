package model

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant boundary: suppliers, imports, and memberships
// all hang off an organization, and queries are always org-scoped.
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Members []Membership `gorm:"foreignKey:OrganizationID"`
}

func (Organization) TableName() string { return "organizations" }
