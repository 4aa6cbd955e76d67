package repository

import (
	"context"
	"time"

	"levscore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository interface {
	Create(ctx context.Context, inv *model.Invitation) error
	FindByToken(ctx context.Context, token string) (*model.Invitation, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Invitation, error)
	MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error
}

type invitationRepo struct{ db *gorm.DB }

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepo{db: db}
}

func (r *invitationRepo) Create(ctx context.Context, inv *model.Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invitationRepo) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Where("token = ?", token).
		First(&inv).Error
	return &inv, err
}

func (r *invitationRepo) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Invitation, error) {
	var invs []model.Invitation
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&invs).Error
	return invs, err
}

func (r *invitationRepo) MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("id = ?", id).
		Update("accepted_at", at).Error
}
