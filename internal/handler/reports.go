package handler

import (
	"errors"
	"net/http"

	"levscore/internal/apierror"
	"levscore/internal/middleware"
	"levscore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Scorecard godoc
// @Summary      Download a supplier's PDF scorecard
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Param        id    path string true "Supplier UUID"
// @Success      200  {file} file
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/suppliers/{id}/scorecard [get]
func (h *ReportsHandler) Scorecard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid supplier id"))
		return
	}
	m := middleware.GetMembership(c)
	path, err := h.svc.Scorecard(c.Request.Context(), m.OrganizationID, id)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("could not generate scorecard"))
		return
	}
	c.FileAttachment(path, "scorecard.pdf")
}

type emailScorecardRequest struct {
	To string `json:"to" validate:"required,email"`
}

// EmailScorecard godoc
// @Summary      Email a supplier's PDF scorecard
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Param        id    path string true "Supplier UUID"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/suppliers/{id}/scorecard/email [post]
func (h *ReportsHandler) EmailScorecard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid supplier id"))
		return
	}
	var req emailScorecardRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m := middleware.GetMembership(c)
	if err := h.svc.EmailScorecard(c.Request.Context(), m.OrganizationID, id, req.To); err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("could not email scorecard"))
		return
	}
	c.Status(http.StatusNoContent)
}
