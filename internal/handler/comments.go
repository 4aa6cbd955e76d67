package handler

import (
	"errors"
	"net/http"

	"levscore/internal/apierror"
	"levscore/internal/dto"
	"levscore/internal/middleware"
	"levscore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentsHandler struct{ svc service.SupplierService }

func NewCommentsHandler(svc service.SupplierService) *CommentsHandler {
	return &CommentsHandler{svc: svc}
}

// Create godoc
// @Summary      Comment on a supplier
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Param        id    path string true "Supplier UUID"
// @Param        body  body dto.CreateCommentRequest true "Comment"
// @Success      201  {object} dto.CommentResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/suppliers/{id}/comments [post]
func (h *CommentsHandler) Create(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid supplier id"))
		return
	}
	var req dto.CreateCommentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m := middleware.GetMembership(c)
	resp, err := h.svc.AddComment(c.Request.Context(), m.OrganizationID, supplierID, middleware.UserID(c), req.Body)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List comments on a supplier, oldest first
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Param        id    path string true "Supplier UUID"
// @Success      200  {array} dto.CommentResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/suppliers/{id}/comments [get]
func (h *CommentsHandler) List(c *gin.Context) {
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid supplier id"))
		return
	}
	m := middleware.GetMembership(c)
	resp, err := h.svc.ListComments(c.Request.Context(), m.OrganizationID, supplierID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a comment
// @Description  Authors can delete their own comments; owners and admins can delete any.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        orgId     path string true "Organization UUID"
// @Param        commentId path string true "Comment UUID"
// @Success      204
// @Failure      403  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/comments/{commentId} [delete]
func (h *CommentsHandler) Delete(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid comment id"))
		return
	}
	m := middleware.GetMembership(c)
	err = h.svc.DeleteComment(c.Request.Context(), m.OrganizationID, commentID, middleware.UserID(c), m.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrNotCommentAuthor):
			c.JSON(http.StatusForbidden, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.Status(http.StatusNoContent)
}
