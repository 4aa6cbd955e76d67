package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"levscore/internal/apierror"
	"levscore/internal/importer"
	"levscore/internal/middleware"
	"levscore/internal/service"

	"github.com/gin-gonic/gin"
)

// Uploads beyond this are rejected before parsing. Spreadsheets of scored
// suppliers are small; 20 MiB is generous.
const maxUploadBytes = 20 << 20

type ImportsHandler struct{ svc service.ImportService }

func NewImportsHandler(svc service.ImportService) *ImportsHandler {
	return &ImportsHandler{svc: svc}
}

// Validate godoc
// @Summary      Dry-run header validation of an xlsx upload
// @Description  Checks the header row only. Returns the validation report either way; invalid is not an error here.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path     string true "Organization UUID"
// @Param        file  formData file   true "xlsx workbook"
// @Success      200  {object} importer.HeaderValidation
// @Failure      422  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/imports/validate [post]
func (h *ImportsHandler) Validate(c *gin.Context) {
	buf, _, ok := readUpload(c)
	if !ok {
		return
	}
	result, err := h.svc.Validate(c.Request.Context(), buf)
	if err != nil {
		writeImportError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Import godoc
// @Summary      Import supplier scores from an xlsx upload
// @Description  Parses the first sheet and upserts suppliers by supplier number. Rows missing the business key are skipped and counted.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path     string true "Organization UUID"
// @Param        file  formData file   true "xlsx workbook"
// @Success      200  {object} dto.ImportResponse
// @Failure      422  {object} apierror.ImportError
// @Router       /v1/orgs/{orgId}/imports [post]
func (h *ImportsHandler) Import(c *gin.Context) {
	buf, filename, ok := readUpload(c)
	if !ok {
		return
	}
	m := middleware.GetMembership(c)
	resp, err := h.svc.Import(c.Request.Context(), m.OrganizationID, middleware.UserID(c), filename, buf)
	if err != nil {
		writeImportError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListLogs godoc
// @Summary      List recent imports
// @Tags         imports
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Success      200  {array} dto.ImportLogResponse
// @Router       /v1/orgs/{orgId}/imports [get]
func (h *ImportsHandler) ListLogs(c *gin.Context) {
	m := middleware.GetMembership(c)
	resp, err := h.svc.ListLogs(c.Request.Context(), m.OrganizationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list imports"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// readUpload pulls the "file" part out of the multipart form. ok=false means
// a response has already been written.
func readUpload(c *gin.Context) (buf []byte, filename string, ok bool) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("multipart field 'file' is required"))
		return nil, "", false
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("file exceeds the 20 MiB upload limit"))
		return nil, "", false
	}
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, apierror.New("only .xlsx files are supported"))
		return nil, "", false
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("could not read upload"))
		return nil, "", false
	}
	defer f.Close()

	buf, err = io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("could not read upload"))
		return nil, "", false
	}
	return buf, filepath.Base(header.Filename), true
}

func writeImportError(c *gin.Context, err error) {
	var headerErr *service.HeaderError
	switch {
	case errors.As(err, &headerErr):
		v := headerErr.Validation
		c.JSON(http.StatusUnprocessableEntity,
			apierror.NewImport(headerErr.Error(), v.MissingColumns, v.FoundColumns))
	case errors.Is(err, importer.ErrEmptyFile), errors.Is(err, importer.ErrNoSuppliers):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New("import failed: "+err.Error()))
	}
}
