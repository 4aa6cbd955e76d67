package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"levscore/internal/config"
	"levscore/internal/dto"
	"levscore/internal/model"
	"levscore/internal/repository"
	"levscore/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrSlugTaken      = errors.New("organization slug is already taken")
	ErrInviteInvalid  = errors.New("invitation invalid or expired")
	ErrAlreadyMember  = errors.New("user is already a member of this organization")
	ErrLastOwner      = errors.New("organization must keep at least one owner")
	ErrMemberNotFound = errors.New("member not found")
)

type MembershipService interface {
	CreateOrganization(ctx context.Context, userID uuid.UUID, req dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error)
	ListMyOrganizations(ctx context.Context, userID uuid.UUID) ([]dto.OrganizationResponse, error)
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]dto.MemberResponse, error)
	Invite(ctx context.Context, orgID, inviterID uuid.UUID, req dto.InviteRequest) (*dto.InvitationResponse, error)
	ListInvitations(ctx context.Context, orgID uuid.UUID) ([]dto.InvitationResponse, error)
	AcceptInvite(ctx context.Context, userID uuid.UUID, token string) (*dto.OrganizationResponse, error)
	ChangeRole(ctx context.Context, orgID, targetUserID uuid.UUID, role string) error
	RemoveMember(ctx context.Context, orgID, targetUserID uuid.UUID) error
}

type membershipService struct {
	orgs        repository.OrganizationRepository
	memberships repository.MembershipRepository
	invitations repository.InvitationRepository
	users       repository.UserRepository
	dispatcher  *worker.Dispatcher
	cfg         *config.Config
}

func NewMembershipService(
	orgs repository.OrganizationRepository,
	memberships repository.MembershipRepository,
	invitations repository.InvitationRepository,
	users repository.UserRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) MembershipService {
	return &membershipService{
		orgs:        orgs,
		memberships: memberships,
		invitations: invitations,
		users:       users,
		dispatcher:  dispatcher,
		cfg:         cfg,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *membershipService) CreateOrganization(ctx context.Context, userID uuid.UUID, req dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if _, err := s.orgs.FindBySlug(ctx, req.Slug); err == nil {
		return nil, ErrSlugTaken
	}

	org := &model.Organization{Name: req.Name, Slug: req.Slug}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, err
	}
	membership := &model.Membership{
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           model.RoleOwner,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}

	return &dto.OrganizationResponse{
		ID:   org.ID.String(),
		Name: org.Name,
		Slug: org.Slug,
		Role: model.RoleOwner,
	}, nil
}

func (s *membershipService) ListMyOrganizations(ctx context.Context, userID uuid.UUID) ([]dto.OrganizationResponse, error) {
	memberships, err := s.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrganizationResponse, 0, len(memberships))
	for _, m := range memberships {
		if m.Organization == nil {
			continue
		}
		resp = append(resp, dto.OrganizationResponse{
			ID:   m.Organization.ID.String(),
			Name: m.Organization.Name,
			Slug: m.Organization.Slug,
			Role: m.Role,
		})
	}
	return resp, nil
}

func (s *membershipService) ListMembers(ctx context.Context, orgID uuid.UUID) ([]dto.MemberResponse, error) {
	memberships, err := s.memberships.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MemberResponse, 0, len(memberships))
	for _, m := range memberships {
		if m.User == nil {
			continue
		}
		resp = append(resp, dto.MemberResponse{
			UserID:    m.UserID.String(),
			Email:     m.User.Email,
			Name:      m.User.Name,
			AvatarURL: m.User.AvatarURL,
			Role:      m.Role,
		})
	}
	return resp, nil
}

func (s *membershipService) Invite(ctx context.Context, orgID, inviterID uuid.UUID, req dto.InviteRequest) (*dto.InvitationResponse, error) {
	// Reject if the email already belongs to a member
	if user, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		if _, err := s.memberships.FindByOrgAndUser(ctx, orgID, user.ID); err == nil {
			return nil, ErrAlreadyMember
		}
	}

	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	inviter, err := s.users.FindByID(ctx, inviterID)
	if err != nil {
		return nil, err
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	inv := &model.Invitation{
		OrganizationID: orgID,
		Email:          req.Email,
		Role:           req.Role,
		Token:          token,
		InvitedByID:    inviterID,
		ExpiresAt:      time.Now().Add(time.Duration(s.cfg.InviteTTLHours) * time.Hour),
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}

	// Email delivery is async; nil dispatcher means no queue (unit tests)
	if s.dispatcher != nil {
		payload := worker.InvitationPayload{
			Email:       req.Email,
			OrgName:     org.Name,
			InviterName: inviter.Name,
			Role:        req.Role,
			Token:       token,
		}
		if err := s.dispatcher.EnqueueInvitation(ctx, payload); err != nil {
			log.Error().Err(err).Str("email", req.Email).Msg("failed to enqueue invitation email")
		}
	}

	resp := invitationToResponse(inv)
	return &resp, nil
}

func (s *membershipService) ListInvitations(ctx context.Context, orgID uuid.UUID) ([]dto.InvitationResponse, error) {
	invitations, err := s.invitations.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InvitationResponse, len(invitations))
	for i, inv := range invitations {
		resp[i] = invitationToResponse(&inv)
	}
	return resp, nil
}

func (s *membershipService) AcceptInvite(ctx context.Context, userID uuid.UUID, token string) (*dto.OrganizationResponse, error) {
	inv, err := s.invitations.FindByToken(ctx, token)
	if err != nil {
		return nil, ErrInviteInvalid
	}
	if inv.AcceptedAt != nil || time.Now().After(inv.ExpiresAt) {
		return nil, ErrInviteInvalid
	}
	if _, err := s.memberships.FindByOrgAndUser(ctx, inv.OrganizationID, userID); err == nil {
		return nil, ErrAlreadyMember
	}

	membership := &model.Membership{
		OrganizationID: inv.OrganizationID,
		UserID:         userID,
		Role:           inv.Role,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}
	if err := s.invitations.MarkAccepted(ctx, inv.ID, time.Now()); err != nil {
		return nil, err
	}

	resp := &dto.OrganizationResponse{
		ID:   inv.OrganizationID.String(),
		Role: inv.Role,
	}
	if inv.Organization != nil {
		resp.Name = inv.Organization.Name
		resp.Slug = inv.Organization.Slug
	}
	return resp, nil
}

func (s *membershipService) ChangeRole(ctx context.Context, orgID, targetUserID uuid.UUID, role string) error {
	m, err := s.memberships.FindByOrgAndUser(ctx, orgID, targetUserID)
	if err != nil {
		return ErrMemberNotFound
	}
	if m.Role == model.RoleOwner {
		owners, err := s.memberships.CountByRole(ctx, orgID, model.RoleOwner)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}
	return s.memberships.UpdateRole(ctx, orgID, targetUserID, role)
}

func (s *membershipService) RemoveMember(ctx context.Context, orgID, targetUserID uuid.UUID) error {
	m, err := s.memberships.FindByOrgAndUser(ctx, orgID, targetUserID)
	if err != nil {
		return ErrMemberNotFound
	}
	if m.Role == model.RoleOwner {
		owners, err := s.memberships.CountByRole(ctx, orgID, model.RoleOwner)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}
	return s.memberships.Delete(ctx, orgID, targetUserID)
}

func generateInviteToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func invitationToResponse(inv *model.Invitation) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:        inv.ID.String(),
		Email:     inv.Email,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
		Accepted:  inv.AcceptedAt != nil,
	}
}
