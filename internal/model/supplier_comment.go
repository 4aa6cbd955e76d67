package model

import (
	"time"

	"github.com/google/uuid"
)

// SupplierComment is a collaborative annotation on a supplier's scorecard.
type SupplierComment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	Body       string    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Author *User `gorm:"foreignKey:AuthorID"`
}

func (SupplierComment) TableName() string { return "supplier_comments" }
