package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"levscore/internal/dto"
	"levscore/internal/model"
	"levscore/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// Stubs surface misses as gorm.ErrRecordNotFound, same as the real repos.
var errStubNotFound = fmt.Errorf("stub: %w", gorm.ErrRecordNotFound)

// stubSupplierRepo is an in-memory SupplierRepository.
type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, errStubNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context, orgID uuid.UUID, filter dto.SupplierFilter) ([]model.Supplier, int64, error) {
	var matched []model.Supplier
	for _, s := range r.suppliers {
		if s.OrganizationID != orgID {
			continue
		}
		if filter.Tier != "" && (s.Tier == nil || *s.Tier != filter.Tier) {
			continue
		}
		if filter.ReviewStatus != "" && s.ReviewStatus != filter.ReviewStatus {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(s.SupplierNumber, filter.Search) {
			continue
		}
		matched = append(matched, *s)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].TotalScore != matched[j].TotalScore {
			return matched[i].TotalScore > matched[j].TotalScore
		}
		return matched[i].SupplierNumber < matched[j].SupplierNumber
	})
	total := int64(len(matched))

	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubSupplierRepo) ListByOrg(_ context.Context, orgID uuid.UUID) ([]model.Supplier, error) {
	var out []model.Supplier
	for _, s := range r.suppliers {
		if s.OrganizationID == orgID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	if _, ok := r.suppliers[s.ID]; !ok {
		return errStubNotFound
	}
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *stubSupplierRepo) FindByNumberTx(_ *gorm.DB, orgID uuid.UUID, number string) (*model.Supplier, error) {
	for _, s := range r.suppliers {
		if s.OrganizationID == orgID && s.SupplierNumber == number {
			return s, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubSupplierRepo) CreateTx(_ *gorm.DB, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) SaveTx(_ *gorm.DB, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) DB() *gorm.DB { return nil }

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// stubImportLogRepo captures written logs for assertion.
type stubImportLogRepo struct {
	logs []*model.ImportLog
}

func (r *stubImportLogRepo) Create(_ context.Context, l *model.ImportLog) error {
	r.logs = append(r.logs, l)
	return nil
}

func (r *stubImportLogRepo) CreateTx(_ *gorm.DB, l *model.ImportLog) error {
	r.logs = append(r.logs, l)
	return nil
}

func (r *stubImportLogRepo) ListByOrg(_ context.Context, orgID uuid.UUID, _ int) ([]model.ImportLog, error) {
	var out []model.ImportLog
	for _, l := range r.logs {
		if l.OrganizationID == orgID {
			out = append(out, *l)
		}
	}
	return out, nil
}

var _ repository.ImportLogRepository = (*stubImportLogRepo)(nil)

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.add(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errStubNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) FindByGoogleSub(_ context.Context, sub string) (*model.User, error) {
	for _, u := range r.users {
		if u.GoogleSub != nil && *u.GoogleSub == sub {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return errStubNotFound
	}
	r.users[u.ID] = u
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// stubOrgRepo is an in-memory OrganizationRepository.
type stubOrgRepo struct {
	orgs map[uuid.UUID]*model.Organization
}

func newStubOrgRepo() *stubOrgRepo {
	return &stubOrgRepo{orgs: make(map[uuid.UUID]*model.Organization)}
}

func (r *stubOrgRepo) Create(_ context.Context, org *model.Organization) error {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	r.orgs[org.ID] = org
	return nil
}

func (r *stubOrgRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return nil, errStubNotFound
	}
	return org, nil
}

func (r *stubOrgRepo) FindBySlug(_ context.Context, slug string) (*model.Organization, error) {
	for _, org := range r.orgs {
		if org.Slug == slug {
			return org, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubOrgRepo) DB() *gorm.DB { return nil }

var _ repository.OrganizationRepository = (*stubOrgRepo)(nil)

// stubMembershipRepo is an in-memory MembershipRepository.
type stubMembershipRepo struct {
	memberships []*model.Membership
}

func (r *stubMembershipRepo) Create(_ context.Context, m *model.Membership) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.memberships = append(r.memberships, m)
	return nil
}

func (r *stubMembershipRepo) FindByOrgAndUser(_ context.Context, orgID, userID uuid.UUID) (*model.Membership, error) {
	for _, m := range r.memberships {
		if m.OrganizationID == orgID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubMembershipRepo) ListByOrg(_ context.Context, orgID uuid.UUID) ([]model.Membership, error) {
	var out []model.Membership
	for _, m := range r.memberships {
		if m.OrganizationID == orgID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMembershipRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Membership, error) {
	var out []model.Membership
	for _, m := range r.memberships {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMembershipRepo) UpdateRole(_ context.Context, orgID, userID uuid.UUID, role string) error {
	for _, m := range r.memberships {
		if m.OrganizationID == orgID && m.UserID == userID {
			m.Role = role
			return nil
		}
	}
	return errStubNotFound
}

func (r *stubMembershipRepo) Delete(_ context.Context, orgID, userID uuid.UUID) error {
	for i, m := range r.memberships {
		if m.OrganizationID == orgID && m.UserID == userID {
			r.memberships = append(r.memberships[:i], r.memberships[i+1:]...)
			return nil
		}
	}
	return errStubNotFound
}

func (r *stubMembershipRepo) CountByRole(_ context.Context, orgID uuid.UUID, role string) (int64, error) {
	var n int64
	for _, m := range r.memberships {
		if m.OrganizationID == orgID && m.Role == role {
			n++
		}
	}
	return n, nil
}

var _ repository.MembershipRepository = (*stubMembershipRepo)(nil)

// stubInvitationRepo is an in-memory InvitationRepository.
type stubInvitationRepo struct {
	invitations map[uuid.UUID]*model.Invitation
}

func newStubInvitationRepo() *stubInvitationRepo {
	return &stubInvitationRepo{invitations: make(map[uuid.UUID]*model.Invitation)}
}

func (r *stubInvitationRepo) Create(_ context.Context, inv *model.Invitation) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.invitations[inv.ID] = inv
	return nil
}

func (r *stubInvitationRepo) FindByToken(_ context.Context, token string) (*model.Invitation, error) {
	for _, inv := range r.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubInvitationRepo) ListByOrg(_ context.Context, orgID uuid.UUID) ([]model.Invitation, error) {
	var out []model.Invitation
	for _, inv := range r.invitations {
		if inv.OrganizationID == orgID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInvitationRepo) MarkAccepted(_ context.Context, id uuid.UUID, at time.Time) error {
	inv, ok := r.invitations[id]
	if !ok {
		return errStubNotFound
	}
	inv.AcceptedAt = &at
	return nil
}

var _ repository.InvitationRepository = (*stubInvitationRepo)(nil)

// stubCommentRepo is an in-memory CommentRepository.
type stubCommentRepo struct {
	comments map[uuid.UUID]*model.SupplierComment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[uuid.UUID]*model.SupplierComment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *model.SupplierComment) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.comments[c.ID] = c
	return nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SupplierComment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, errStubNotFound
	}
	return c, nil
}

func (r *stubCommentRepo) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]model.SupplierComment, error) {
	var out []model.SupplierComment
	for _, c := range r.comments {
		if c.SupplierID == supplierID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.comments[id]; !ok {
		return errStubNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) CountBySupplier(_ context.Context, supplierID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.comments {
		if c.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

var _ repository.CommentRepository = (*stubCommentRepo)(nil)
