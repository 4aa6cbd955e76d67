package service

import (
	"context"
	"errors"
	"time"

	"levscore/internal/dto"
	"levscore/internal/model"
	"levscore/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the author can delete a comment")
)

type SupplierService interface {
	List(ctx context.Context, orgID uuid.UUID, filter dto.SupplierFilter) (*dto.SupplierListResponse, error)
	Get(ctx context.Context, orgID, supplierID uuid.UUID) (*dto.SupplierResponse, error)
	SetReviewStatus(ctx context.Context, orgID, supplierID, reviewerID uuid.UUID, status string) (*dto.SupplierResponse, error)
	AddComment(ctx context.Context, orgID, supplierID, authorID uuid.UUID, body string) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, orgID, supplierID uuid.UUID) ([]dto.CommentResponse, error)
	DeleteComment(ctx context.Context, orgID, commentID, callerID uuid.UUID, callerRole string) error
}

type supplierService struct {
	suppliers repository.SupplierRepository
	comments  repository.CommentRepository
	users     repository.UserRepository
}

func NewSupplierService(
	suppliers repository.SupplierRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
) SupplierService {
	return &supplierService{suppliers: suppliers, comments: comments, users: users}
}

func (s *supplierService) List(ctx context.Context, orgID uuid.UUID, filter dto.SupplierFilter) (*dto.SupplierListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	suppliers, total, err := s.suppliers.List(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.SupplierResponse, len(suppliers))
	for i := range suppliers {
		data[i] = supplierToResponse(&suppliers[i], len(suppliers[i].Comments))
	}
	return &dto.SupplierListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *supplierService) Get(ctx context.Context, orgID, supplierID uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.findInOrg(ctx, orgID, supplierID)
	if err != nil {
		return nil, err
	}
	count, err := s.comments.CountBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	resp := supplierToResponse(sup, int(count))
	return &resp, nil
}

func (s *supplierService) SetReviewStatus(ctx context.Context, orgID, supplierID, reviewerID uuid.UUID, status string) (*dto.SupplierResponse, error) {
	sup, err := s.findInOrg(ctx, orgID, supplierID)
	if err != nil {
		return nil, err
	}

	sup.ReviewStatus = status
	if status == model.ReviewPending {
		sup.ReviewedByID = nil
		sup.ReviewedAt = nil
		sup.ReviewedBy = nil
	} else {
		now := time.Now()
		sup.ReviewedByID = &reviewerID
		sup.ReviewedAt = &now
		if reviewer, err := s.users.FindByID(ctx, reviewerID); err == nil {
			sup.ReviewedBy = reviewer
		}
	}
	if err := s.suppliers.Update(ctx, sup); err != nil {
		return nil, err
	}

	count, err := s.comments.CountBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	resp := supplierToResponse(sup, int(count))
	return &resp, nil
}

func (s *supplierService) AddComment(ctx context.Context, orgID, supplierID, authorID uuid.UUID, body string) (*dto.CommentResponse, error) {
	if _, err := s.findInOrg(ctx, orgID, supplierID); err != nil {
		return nil, err
	}

	comment := &model.SupplierComment{
		SupplierID: supplierID,
		AuthorID:   authorID,
		Body:       body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	if author, err := s.users.FindByID(ctx, authorID); err == nil {
		comment.Author = author
	}
	resp := commentToResponse(comment)
	return &resp, nil
}

func (s *supplierService) ListComments(ctx context.Context, orgID, supplierID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := s.findInOrg(ctx, orgID, supplierID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CommentResponse, len(comments))
	for i := range comments {
		resp[i] = commentToResponse(&comments[i])
	}
	return resp, nil
}

// DeleteComment allows the author to remove their own comment; owners and
// admins can remove anyone's.
func (s *supplierService) DeleteComment(ctx context.Context, orgID, commentID, callerID uuid.UUID, callerRole string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return ErrCommentNotFound
	}
	if _, err := s.findInOrg(ctx, orgID, comment.SupplierID); err != nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != callerID && callerRole != model.RoleOwner && callerRole != model.RoleAdmin {
		return ErrNotCommentAuthor
	}
	return s.comments.Delete(ctx, commentID)
}

// findInOrg fetches a supplier and enforces the tenant boundary: a supplier
// id from another organization is indistinguishable from a missing one.
func (s *supplierService) findInOrg(ctx context.Context, orgID, supplierID uuid.UUID) (*model.Supplier, error) {
	sup, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil || sup.OrganizationID != orgID {
		return nil, ErrSupplierNotFound
	}
	return sup, nil
}

func supplierToResponse(s *model.Supplier, commentCount int) dto.SupplierResponse {
	resp := dto.SupplierResponse{
		ID:             s.ID.String(),
		SupplierNumber: s.SupplierNumber,
		Name:           s.Name,

		RowCount:         s.RowCount,
		TotalQuantity:    s.TotalQuantity,
		TotalRevenue:     s.TotalRevenue,
		AvgMargin:        s.AvgMargin,
		SalesScore:       s.SalesScore,
		AssortmentScore:  s.AssortmentScore,
		EfficiencyScore:  s.EfficiencyScore,
		MarginScore:      s.MarginScore,
		TotalScore:       s.TotalScore,
		RevenueShare:     s.RevenueShare,
		AccumulatedShare: s.AccumulatedShare,

		Diagnosis:   s.Diagnosis,
		ShortAction: s.ShortAction,
		Tier:        s.Tier,
		Profile:     s.Profile,

		ReviewStatus: s.ReviewStatus,
		CommentCount: commentCount,
		UpdatedAt:    s.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if s.ReviewedBy != nil {
		name := s.ReviewedBy.Name
		resp.ReviewedBy = &name
	}
	if s.ReviewedAt != nil {
		at := s.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	return resp
}

func commentToResponse(c *model.SupplierComment) dto.CommentResponse {
	resp := dto.CommentResponse{
		ID:        c.ID.String(),
		AuthorID:  c.AuthorID.String(),
		Body:      c.Body,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.Author != nil {
		resp.Author = c.Author.Name
		resp.Avatar = c.Author.AvatarURL
	}
	return resp
}
