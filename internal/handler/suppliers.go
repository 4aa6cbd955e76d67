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

type SuppliersHandler struct {
	svc    service.SupplierService
	scores service.ScoreService
}

func NewSuppliersHandler(svc service.SupplierService, scores service.ScoreService) *SuppliersHandler {
	return &SuppliersHandler{svc: svc, scores: scores}
}

// List godoc
// @Summary      List suppliers, ranked by total score
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        orgId         path  string true  "Organization UUID"
// @Param        tier          query string false "Filter by ABC tier"
// @Param        review_status query string false "Filter by review status"
// @Param        search        query string false "Match name or supplier number"
// @Param        page          query int    false "Page (1-based)"
// @Param        limit         query int    false "Page size (max 200)"
// @Success      200  {object} dto.SupplierListResponse
// @Router       /v1/orgs/{orgId}/suppliers [get]
func (h *SuppliersHandler) List(c *gin.Context) {
	var filter dto.SupplierFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	m := middleware.GetMembership(c)
	resp, err := h.svc.List(c.Request.Context(), m.OrganizationID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list suppliers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Fetch one supplier's scorecard
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Param        id    path string true "Supplier UUID"
// @Success      200  {object} dto.SupplierResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/suppliers/{id} [get]
func (h *SuppliersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid supplier id"))
		return
	}
	m := middleware.GetMembership(c)
	resp, err := h.svc.Get(c.Request.Context(), m.OrganizationID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetReviewStatus godoc
// @Summary      Move a supplier through the review workflow
// @Description  pending → reviewed/flagged. Setting pending clears the reviewer.
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Param        id    path string true "Supplier UUID"
// @Param        body  body dto.SetReviewStatusRequest true "New status"
// @Success      200  {object} dto.SupplierResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/suppliers/{id}/review [put]
func (h *SuppliersHandler) SetReviewStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid supplier id"))
		return
	}
	var req dto.SetReviewStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m := middleware.GetMembership(c)
	resp, err := h.svc.SetReviewStatus(c.Request.Context(), m.OrganizationID, id, middleware.UserID(c), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recompute godoc
// @Summary      Recalculate revenue shares and ABC tiers
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Success      204
// @Router       /v1/orgs/{orgId}/scores/recompute [post]
func (h *SuppliersHandler) Recompute(c *gin.Context) {
	m := middleware.GetMembership(c)
	if err := h.scores.Recompute(c.Request.Context(), m.OrganizationID); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("recompute failed"))
		return
	}
	c.Status(http.StatusNoContent)
}
