package repository

import (
	"context"

	"levscore/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrendRepository interface {
	// Upsert writes one monthly observation, keyed by month.
	Upsert(ctx context.Context, s *model.TrendSnapshot) error
	List(ctx context.Context, limit int) ([]model.TrendSnapshot, error)
}

type trendRepo struct{ db *gorm.DB }

func NewTrendRepository(db *gorm.DB) TrendRepository { return &trendRepo{db: db} }

func (r *trendRepo) Upsert(ctx context.Context, s *model.TrendSnapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"index_value", "source", "fetched_at"}),
	}).Create(s).Error
}

func (r *trendRepo) List(ctx context.Context, limit int) ([]model.TrendSnapshot, error) {
	var snapshots []model.TrendSnapshot
	err := r.db.WithContext(ctx).
		Order("month DESC").
		Limit(limit).
		Find(&snapshots).Error
	return snapshots, err
}
