package model

import (
	"time"

	"github.com/google/uuid"
)

// Review workflow states for a supplier.
const (
	ReviewPending  = "pending"
	ReviewReviewed = "reviewed"
	ReviewFlagged  = "flagged"
)

// Supplier is one scored supplier within an organization. The business key
// is (organization_id, supplier_number): uploads upsert against it, so a
// supplier keeps its identity, comments, and review state across imports.
//
// Metric columns mirror importer.SupplierRecord; they default to 0 when the
// uploaded sheet lacked or mangled the value. Free-text columns are nullable
// to keep "absent" distinct from "present but empty".
type Supplier struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_org_supplier_number"`
	SupplierNumber string    `gorm:"not null;uniqueIndex:idx_org_supplier_number"`
	Name           string    `gorm:"not null"`

	RowCount         float64 `gorm:"not null;default:0"`
	TotalQuantity    float64 `gorm:"not null;default:0"`
	TotalRevenue     float64 `gorm:"not null;default:0"`
	AvgMargin        float64 `gorm:"not null;default:0"`
	SalesScore       float64 `gorm:"not null;default:0"`
	AssortmentScore  float64 `gorm:"not null;default:0"`
	EfficiencyScore  float64 `gorm:"not null;default:0"`
	MarginScore      float64 `gorm:"not null;default:0"`
	TotalScore       float64 `gorm:"not null;default:0"`
	RevenueShare     float64 `gorm:"not null;default:0"`
	AccumulatedShare float64 `gorm:"not null;default:0"`

	Diagnosis   *string
	ShortAction *string
	Tier        *string `gorm:"type:varchar(10)"`
	Profile     *string

	ReviewStatus string     `gorm:"type:varchar(20);not null;default:pending"`
	ReviewedByID *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	ReviewedBy *User             `gorm:"foreignKey:ReviewedByID"`
	Comments   []SupplierComment `gorm:"foreignKey:SupplierID"`
}

func (Supplier) TableName() string { return "suppliers" }
