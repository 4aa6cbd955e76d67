package repository

import (
	"context"

	"levscore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository interface {
	Create(ctx context.Context, m *model.Membership) error
	FindByOrgAndUser(ctx context.Context, orgID, userID uuid.UUID) (*model.Membership, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Membership, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error)
	UpdateRole(ctx context.Context, orgID, userID uuid.UUID, role string) error
	Delete(ctx context.Context, orgID, userID uuid.UUID) error
	CountByRole(ctx context.Context, orgID uuid.UUID, role string) (int64, error)
}

type membershipRepo struct{ db *gorm.DB }

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepo{db: db}
}

func (r *membershipRepo) Create(ctx context.Context, m *model.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *membershipRepo) FindByOrgAndUser(ctx context.Context, orgID, userID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&m).Error
	return &m, err
}

func (r *membershipRepo) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Membership, error) {
	var members []model.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *membershipRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	var members []model.Membership
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *membershipRepo) UpdateRole(ctx context.Context, orgID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Update("role", role).Error
}

func (r *membershipRepo) Delete(ctx context.Context, orgID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Delete(&model.Membership{}).Error
}

func (r *membershipRepo) CountByRole(ctx context.Context, orgID uuid.UUID, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).
		Where("organization_id = ? AND role = ?", orgID, role).
		Count(&count).Error
	return count, err
}
