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

type OrgsHandler struct{ svc service.MembershipService }

func NewOrgsHandler(svc service.MembershipService) *OrgsHandler { return &OrgsHandler{svc: svc} }

// Create godoc
// @Summary      Create an organization
// @Description  The caller becomes the organization's owner.
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateOrganizationRequest true "Organization"
// @Success      201  {object} dto.OrganizationResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orgs [post]
func (h *OrgsHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateOrganization(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMine godoc
// @Summary      List the organizations the caller belongs to
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.OrganizationResponse
// @Router       /v1/orgs [get]
func (h *OrgsHandler) ListMine(c *gin.Context) {
	resp, err := h.svc.ListMyOrganizations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list organizations"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMembers godoc
// @Summary      List members of an organization
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Success      200  {array} dto.MemberResponse
// @Router       /v1/orgs/{orgId}/members [get]
func (h *OrgsHandler) ListMembers(c *gin.Context) {
	m := middleware.GetMembership(c)
	resp, err := h.svc.ListMembers(c.Request.Context(), m.OrganizationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list members"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Invite godoc
// @Summary      Invite someone to the organization by email
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Param        body  body dto.InviteRequest true "Invitee"
// @Success      201  {object} dto.InvitationResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/invitations [post]
func (h *OrgsHandler) Invite(c *gin.Context) {
	var req dto.InviteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m := middleware.GetMembership(c)
	resp, err := h.svc.Invite(c.Request.Context(), m.OrganizationID, middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyMember) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListInvitations godoc
// @Summary      List pending and accepted invitations
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        orgId path string true "Organization UUID"
// @Success      200  {array} dto.InvitationResponse
// @Router       /v1/orgs/{orgId}/invitations [get]
func (h *OrgsHandler) ListInvitations(c *gin.Context) {
	m := middleware.GetMembership(c)
	resp, err := h.svc.ListInvitations(c.Request.Context(), m.OrganizationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list invitations"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AcceptInvite godoc
// @Summary      Accept an invitation token
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AcceptInviteRequest true "Invitation token"
// @Success      200  {object} dto.OrganizationResponse
// @Failure      410  {object} apierror.APIError
// @Router       /v1/invitations/accept [post]
func (h *OrgsHandler) AcceptInvite(c *gin.Context) {
	var req dto.AcceptInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AcceptInvite(c.Request.Context(), middleware.UserID(c), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteInvalid):
			c.JSON(http.StatusGone, apierror.New(err.Error()))
		case errors.Is(err, service.ErrAlreadyMember):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeRole godoc
// @Summary      Change a member's role
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orgId  path string true "Organization UUID"
// @Param        userId path string true "Member's user UUID"
// @Param        body   body dto.ChangeRoleRequest true "New role"
// @Success      204
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/members/{userId} [patch]
func (h *OrgsHandler) ChangeRole(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid user id"))
		return
	}
	var req dto.ChangeRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m := middleware.GetMembership(c)
	if err := h.svc.ChangeRole(c.Request.Context(), m.OrganizationID, targetID, req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrLastOwner):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Remove a member from the organization
// @Tags         organizations
// @Produce      json
// @Security     BearerAuth
// @Param        orgId  path string true "Organization UUID"
// @Param        userId path string true "Member's user UUID"
// @Success      204
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orgs/{orgId}/members/{userId} [delete]
func (h *OrgsHandler) RemoveMember(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid user id"))
		return
	}
	m := middleware.GetMembership(c)
	if err := h.svc.RemoveMember(c.Request.Context(), m.OrganizationID, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrLastOwner):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.Status(http.StatusNoContent)
}
