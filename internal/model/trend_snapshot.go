package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrendSnapshot is one month of the external retail trend index, pulled by
// the background poller. Month is "YYYY-MM"; re-polls upsert the same row.
type TrendSnapshot struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Month      string          `gorm:"type:varchar(7);uniqueIndex;not null"`
	IndexValue decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Source     string          `gorm:"not null"`
	FetchedAt  time.Time       `gorm:"not null"`
	CreatedAt  time.Time
}

func (TrendSnapshot) TableName() string { return "trend_snapshots" }
