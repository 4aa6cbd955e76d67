package repository

import (
	"context"

	"levscore/internal/dto"
	"levscore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplierRepository defines the data access contract for suppliers.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	List(ctx context.Context, orgID uuid.UUID, filter dto.SupplierFilter) ([]model.Supplier, int64, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error

	// Used inside transactions — callers must pass the tx instance
	FindByNumberTx(tx *gorm.DB, orgID uuid.UUID, number string) (*model.Supplier, error)
	CreateTx(tx *gorm.DB, s *model.Supplier) error
	SaveTx(tx *gorm.DB, s *model.Supplier) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).Preload("ReviewedBy").First(&s, id).Error
	return &s, err
}

func (r *supplierRepo) List(ctx context.Context, orgID uuid.UUID, filter dto.SupplierFilter) ([]model.Supplier, int64, error) {
	var suppliers []model.Supplier
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Supplier{}).
		Where("organization_id = ?", orgID)

	if filter.Tier != "" {
		q = q.Where("tier = ?", filter.Tier)
	}
	if filter.ReviewStatus != "" {
		q = q.Where("review_status = ?", filter.ReviewStatus)
	}
	if filter.Search != "" {
		q = q.Where("name ILIKE ? OR supplier_number ILIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Comments").Preload("ReviewedBy").
		Order("total_score DESC, supplier_number ASC").
		Limit(filter.Limit).Offset(offset).
		Find(&suppliers).Error
	return suppliers, total, err
}

func (r *supplierRepo) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("total_revenue DESC").
		Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepo) FindByNumberTx(tx *gorm.DB, orgID uuid.UUID, number string) (*model.Supplier, error) {
	var s model.Supplier
	err := tx.Where("organization_id = ? AND supplier_number = ?", orgID, number).First(&s).Error
	return &s, err
}

func (r *supplierRepo) CreateTx(tx *gorm.DB, s *model.Supplier) error {
	return tx.Create(s).Error
}

func (r *supplierRepo) SaveTx(tx *gorm.DB, s *model.Supplier) error {
	return tx.Save(s).Error
}

func (r *supplierRepo) DB() *gorm.DB { return r.db }
