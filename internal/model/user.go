package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a person who can sign in. PasswordHash is nil for accounts created
// through Google sign-in only; GoogleSub is nil for password-only accounts.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash *string
	GoogleSub    *string `gorm:"uniqueIndex"`
	AvatarURL    *string
	Active       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
