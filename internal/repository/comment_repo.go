package repository

import (
	"context"

	"levscore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, c *model.SupplierComment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SupplierComment, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.SupplierComment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
}

type commentRepo struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepo{db: db} }

func (r *commentRepo) Create(ctx context.Context, c *model.SupplierComment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SupplierComment, error) {
	var c model.SupplierComment
	err := r.db.WithContext(ctx).Preload("Author").First(&c, id).Error
	return &c, err
}

func (r *commentRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.SupplierComment, error) {
	var comments []model.SupplierComment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("supplier_id = ?", supplierID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SupplierComment{}, id).Error
}

func (r *commentRepo) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SupplierComment{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count, err
}
