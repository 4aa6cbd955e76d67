package model

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles, in descending privilege.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleViewer = "viewer"
)

// Membership ties a user to an organization with a role.
// Role: "owner" | "admin" | "member" | "viewer"
type Membership struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_user"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_user"`
	Role           string    `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User         *User         `gorm:"foreignKey:UserID"`
	Organization *Organization `gorm:"foreignKey:OrganizationID"`
}

func (Membership) TableName() string { return "memberships" }
