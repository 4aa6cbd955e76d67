package handler

import (
	"net/http"
	"strconv"

	"levscore/internal/apierror"
	"levscore/internal/service"

	"github.com/gin-gonic/gin"
)

type TrendsHandler struct{ svc service.TrendService }

func NewTrendsHandler(svc service.TrendService) *TrendsHandler { return &TrendsHandler{svc: svc} }

// List godoc
// @Summary      List monthly retail index snapshots, newest first
// @Tags         trends
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Months to return (default 24)"
// @Success      200  {array} dto.TrendSnapshotResponse
// @Router       /v1/trends [get]
func (h *TrendsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	resp, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list trend snapshots"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Trigger an immediate poll of the external index
// @Description  The refresh runs async on the worker pool; poll GET /v1/trends for results.
// @Tags         trends
// @Produce      json
// @Security     BearerAuth
// @Success      202
// @Router       /v1/trends/refresh [post]
func (h *TrendsHandler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not enqueue refresh"))
		return
	}
	c.Status(http.StatusAccepted)
}
