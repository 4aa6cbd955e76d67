package repository

import (
	"context"

	"levscore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImportLogRepository interface {
	Create(ctx context.Context, l *model.ImportLog) error
	CreateTx(tx *gorm.DB, l *model.ImportLog) error
	ListByOrg(ctx context.Context, orgID uuid.UUID, limit int) ([]model.ImportLog, error)
}

type importLogRepo struct{ db *gorm.DB }

func NewImportLogRepository(db *gorm.DB) ImportLogRepository {
	return &importLogRepo{db: db}
}

func (r *importLogRepo) Create(ctx context.Context, l *model.ImportLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *importLogRepo) CreateTx(tx *gorm.DB, l *model.ImportLog) error {
	return tx.Create(l).Error
}

func (r *importLogRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, limit int) ([]model.ImportLog, error) {
	var logs []model.ImportLog
	err := r.db.WithContext(ctx).
		Preload("UploadedBy").
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
