package service

import (
	"context"
	"testing"
	"time"

	"levscore/internal/config"
	"levscore/internal/dto"
	"levscore/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMembershipFixture() (*stubOrgRepo, *stubMembershipRepo, *stubInvitationRepo, *stubUserRepo, MembershipService) {
	orgs := newStubOrgRepo()
	memberships := &stubMembershipRepo{}
	invitations := newStubInvitationRepo()
	users := newStubUserRepo()
	cfg := &config.Config{InviteTTLHours: 72}
	svc := NewMembershipService(orgs, memberships, invitations, users, nil, cfg)
	return orgs, memberships, invitations, users, svc
}

func TestCreateOrganization_CallerBecomesOwner(t *testing.T) {
	_, memberships, _, users, svc := newMembershipFixture()
	user := users.add(&model.User{Email: "anna@example.com", Name: "Anna"})

	resp, err := svc.CreateOrganization(context.Background(), user.ID, dto.CreateOrganizationRequest{
		Name: "Retail AB", Slug: "retail-ab",
	})
	require.NoError(t, err)
	assert.Equal(t, "retail-ab", resp.Slug)
	assert.Equal(t, model.RoleOwner, resp.Role)

	orgID := uuid.MustParse(resp.ID)
	m, err := memberships.FindByOrgAndUser(context.Background(), orgID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, m.Role)
}

func TestCreateOrganization_DuplicateSlug(t *testing.T) {
	_, _, _, users, svc := newMembershipFixture()
	user := users.add(&model.User{Email: "anna@example.com", Name: "Anna"})

	req := dto.CreateOrganizationRequest{Name: "Retail AB", Slug: "retail-ab"}
	_, err := svc.CreateOrganization(context.Background(), user.ID, req)
	require.NoError(t, err)

	_, err = svc.CreateOrganization(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestInvite_AndAccept(t *testing.T) {
	_, memberships, invitations, users, svc := newMembershipFixture()
	owner := users.add(&model.User{Email: "owner@example.com", Name: "Owner"})

	org, err := svc.CreateOrganization(context.Background(), owner.ID, dto.CreateOrganizationRequest{
		Name: "Retail AB", Slug: "retail-ab",
	})
	require.NoError(t, err)
	orgID := uuid.MustParse(org.ID)

	inv, err := svc.Invite(context.Background(), orgID, owner.ID, dto.InviteRequest{
		Email: "new@example.com", Role: model.RoleMember,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, inv.Role)
	assert.False(t, inv.Accepted)

	token := tokenOf(t, invitations, inv.ID)

	invitee := users.add(&model.User{Email: "new@example.com", Name: "New"})
	accepted, err := svc.AcceptInvite(context.Background(), invitee.ID, token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, accepted.Role)

	m, err := memberships.FindByOrgAndUser(context.Background(), orgID, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, m.Role)

	// A token only works once
	_, err = svc.AcceptInvite(context.Background(), invitee.ID, token)
	assert.Error(t, err)
}

func TestInvite_ExistingMemberRejected(t *testing.T) {
	_, _, _, users, svc := newMembershipFixture()
	owner := users.add(&model.User{Email: "owner@example.com", Name: "Owner"})

	org, err := svc.CreateOrganization(context.Background(), owner.ID, dto.CreateOrganizationRequest{
		Name: "Retail AB", Slug: "retail-ab",
	})
	require.NoError(t, err)

	_, err = svc.Invite(context.Background(), uuid.MustParse(org.ID), owner.ID, dto.InviteRequest{
		Email: owner.Email, Role: model.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestAcceptInvite_Expired(t *testing.T) {
	_, _, invitations, users, svc := newMembershipFixture()
	owner := users.add(&model.User{Email: "owner@example.com", Name: "Owner"})
	invitee := users.add(&model.User{Email: "late@example.com", Name: "Late"})

	org, err := svc.CreateOrganization(context.Background(), owner.ID, dto.CreateOrganizationRequest{
		Name: "Retail AB", Slug: "retail-ab",
	})
	require.NoError(t, err)

	expired := &model.Invitation{
		OrganizationID: uuid.MustParse(org.ID),
		Email:          invitee.Email,
		Role:           model.RoleViewer,
		Token:          "expired-token",
		InvitedByID:    owner.ID,
		ExpiresAt:      time.Now().Add(-time.Hour),
	}
	require.NoError(t, invitations.Create(context.Background(), expired))

	_, err = svc.AcceptInvite(context.Background(), invitee.ID, "expired-token")
	assert.ErrorIs(t, err, ErrInviteInvalid)
}

func TestRemoveMember_LastOwnerProtected(t *testing.T) {
	_, _, _, users, svc := newMembershipFixture()
	owner := users.add(&model.User{Email: "owner@example.com", Name: "Owner"})

	org, err := svc.CreateOrganization(context.Background(), owner.ID, dto.CreateOrganizationRequest{
		Name: "Retail AB", Slug: "retail-ab",
	})
	require.NoError(t, err)
	orgID := uuid.MustParse(org.ID)

	err = svc.RemoveMember(context.Background(), orgID, owner.ID)
	assert.ErrorIs(t, err, ErrLastOwner)

	err = svc.ChangeRole(context.Background(), orgID, owner.ID, model.RoleViewer)
	assert.ErrorIs(t, err, ErrLastOwner)
}

func TestChangeRole_Member(t *testing.T) {
	_, memberships, _, users, svc := newMembershipFixture()
	owner := users.add(&model.User{Email: "owner@example.com", Name: "Owner"})
	member := users.add(&model.User{Email: "m@example.com", Name: "M"})

	org, err := svc.CreateOrganization(context.Background(), owner.ID, dto.CreateOrganizationRequest{
		Name: "Retail AB", Slug: "retail-ab",
	})
	require.NoError(t, err)
	orgID := uuid.MustParse(org.ID)

	require.NoError(t, memberships.Create(context.Background(), &model.Membership{
		OrganizationID: orgID, UserID: member.ID, Role: model.RoleViewer,
	}))

	require.NoError(t, svc.ChangeRole(context.Background(), orgID, member.ID, model.RoleAdmin))
	m, err := memberships.FindByOrgAndUser(context.Background(), orgID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, m.Role)
}

// tokenOf digs the raw token out of the stub; the response DTO deliberately
// omits it.
func tokenOf(t *testing.T, invitations *stubInvitationRepo, id string) string {
	t.Helper()
	inv, ok := invitations.invitations[uuid.MustParse(id)]
	require.True(t, ok)
	return inv.Token
}
