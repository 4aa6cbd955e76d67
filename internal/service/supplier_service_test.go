package service

import (
	"context"
	"testing"

	"levscore/internal/dto"
	"levscore/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupplierFixture() (*stubSupplierRepo, *stubCommentRepo, *stubUserRepo, SupplierService) {
	suppliers := newStubSupplierRepo()
	comments := newStubCommentRepo()
	users := newStubUserRepo()
	svc := NewSupplierService(suppliers, comments, users)
	return suppliers, comments, users, svc
}

func seedSupplier(r *stubSupplierRepo, orgID uuid.UUID, number, name string, score float64) *model.Supplier {
	s := &model.Supplier{
		ID:             uuid.New(),
		OrganizationID: orgID,
		SupplierNumber: number,
		Name:           name,
		TotalScore:     score,
		ReviewStatus:   model.ReviewPending,
	}
	r.suppliers[s.ID] = s
	return s
}

func TestListSuppliers_RankedAndFiltered(t *testing.T) {
	suppliers, _, _, svc := newSupplierFixture()
	orgID := uuid.New()
	seedSupplier(suppliers, orgID, "1", "Low", 10)
	seedSupplier(suppliers, orgID, "2", "High", 95)
	seedSupplier(suppliers, uuid.New(), "3", "Other org", 99)

	resp, err := svc.List(context.Background(), orgID, dto.SupplierFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "High", resp.Data[0].Name, "ordered by total score")

	resp, err = svc.List(context.Background(), orgID, dto.SupplierFilter{Search: "high"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
}

func TestGetSupplier_TenantBoundary(t *testing.T) {
	suppliers, _, _, svc := newSupplierFixture()
	orgID := uuid.New()
	s := seedSupplier(suppliers, orgID, "1", "Acme", 50)

	_, err := svc.Get(context.Background(), orgID, s.ID)
	require.NoError(t, err)

	// Same supplier id through another org's scope must 404
	_, err = svc.Get(context.Background(), uuid.New(), s.ID)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestSetReviewStatus_RoundTrip(t *testing.T) {
	suppliers, _, users, svc := newSupplierFixture()
	orgID := uuid.New()
	s := seedSupplier(suppliers, orgID, "1", "Acme", 50)
	reviewer := users.add(&model.User{Email: "r@example.com", Name: "Reviewer"})

	resp, err := svc.SetReviewStatus(context.Background(), orgID, s.ID, reviewer.ID, model.ReviewReviewed)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewReviewed, resp.ReviewStatus)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "Reviewer", *resp.ReviewedBy)
	assert.NotNil(t, resp.ReviewedAt)

	// Back to pending clears the reviewer
	resp, err = svc.SetReviewStatus(context.Background(), orgID, s.ID, reviewer.ID, model.ReviewPending)
	require.NoError(t, err)
	assert.Equal(t, model.ReviewPending, resp.ReviewStatus)
	assert.Nil(t, resp.ReviewedBy)
	assert.Nil(t, resp.ReviewedAt)
}

func TestComments_AddListDelete(t *testing.T) {
	suppliers, _, users, svc := newSupplierFixture()
	orgID := uuid.New()
	s := seedSupplier(suppliers, orgID, "1", "Acme", 50)
	author := users.add(&model.User{Email: "a@example.com", Name: "Author"})
	other := users.add(&model.User{Email: "b@example.com", Name: "Other"})

	created, err := svc.AddComment(context.Background(), orgID, s.ID, author.ID, "needs a call")
	require.NoError(t, err)
	assert.Equal(t, "Author", created.Author)

	list, err := svc.ListComments(context.Background(), orgID, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "needs a call", list[0].Body)

	commentID := uuid.MustParse(created.ID)

	// A plain member cannot delete someone else's comment
	err = svc.DeleteComment(context.Background(), orgID, commentID, other.ID, model.RoleMember)
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	// But an admin can
	err = svc.DeleteComment(context.Background(), orgID, commentID, other.ID, model.RoleAdmin)
	require.NoError(t, err)

	list, err = svc.ListComments(context.Background(), orgID, s.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAddComment_UnknownSupplier(t *testing.T) {
	_, _, users, svc := newSupplierFixture()
	author := users.add(&model.User{Email: "a@example.com", Name: "Author"})

	_, err := svc.AddComment(context.Background(), uuid.New(), uuid.New(), author.ID, "hello")
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}
