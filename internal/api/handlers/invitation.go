package handlers

import (
	"net/http"
	"strconv"

	"teamflow-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// InvitationHandler handles HTTP requests for the invitation lifecycle
type InvitationHandler struct {
	invitationService service.InvitationServiceInterface
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService service.InvitationServiceInterface) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

// IssueInvitation handles POST /organizations/:orgID/invitations
// @Summary Invite someone to an organization
// @Description Create a pending invitation and email an acceptance link. Admin only.
// @Tags invitations
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param request body service.IssueInvitationRequest true "Invitee email and role"
// @Success 201 {object} service.InvitationResponse "Invitation created"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 409 {object} ErrorResponse "Already a member or already invited"
// @Security BearerAuth
// @Router /organizations/{orgID}/invitations [post]
func (h *InvitationHandler) IssueInvitation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseUUIDParam(c, "orgID")
	if !ok {
		return
	}

	var req service.IssueInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.invitationService.Issue(userID, orgID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListInvitations handles GET /organizations/:orgID/invitations
// @Summary List an organization's invitations
// @Description Get all invitations in any state, newest first. Admin only.
// @Tags invitations
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(50)
// @Success 200 {object} service.InvitationListResponse "Invitations"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Security BearerAuth
// @Router /organizations/{orgID}/invitations [get]
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseUUIDParam(c, "orgID")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	resp, err := h.invitationService.List(userID, orgID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AcceptInvitationRequest represents the accept request body
type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}

// AcceptInvitation handles POST /invitations/accept
// @Summary Accept an invitation
// @Description Redeem an invitation token for the authenticated user. The token's email must match the caller's email.
// @Tags invitations
// @Accept json
// @Produce json
// @Param request body AcceptInvitationRequest true "Invitation token"
// @Success 200 {object} service.AcceptInvitationResponse "Invitation accepted"
// @Failure 403 {object} ErrorResponse "Issued to a different email"
// @Failure 404 {object} ErrorResponse "Invitation not found"
// @Failure 409 {object} ErrorResponse "Invitation no longer pending"
// @Failure 410 {object} ErrorResponse "Invitation expired"
// @Security BearerAuth
// @Router /invitations/accept [post]
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.invitationService.Accept(userID, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ValidateInvitation handles GET /invitations/validate?token=...
// @Summary Validate an invitation token
// @Description Resolve an invitation token for the acceptance page. Public endpoint.
// @Tags invitations
// @Produce json
// @Param token query string true "Invitation token"
// @Success 200 {object} service.ValidateInvitationResponse "Invitation details"
// @Failure 404 {object} ErrorResponse "Invitation not found"
// @Failure 409 {object} ErrorResponse "Invitation no longer pending"
// @Failure 410 {object} ErrorResponse "Invitation expired"
// @Router /invitations/validate [get]
func (h *InvitationHandler) ValidateInvitation(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	resp, err := h.invitationService.Validate(token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RevokeInvitation handles DELETE /invitations/:invitationID
// @Summary Revoke an invitation
// @Description Cancel a pending invitation. Admin of the invitation's organization only.
// @Tags invitations
// @Produce json
// @Param invitationID path string true "Invitation ID"
// @Success 200 {object} service.InvitationResponse "Invitation revoked"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Invitation not found"
// @Failure 409 {object} ErrorResponse "Invitation no longer pending"
// @Security BearerAuth
// @Router /invitations/{invitationID} [delete]
func (h *InvitationHandler) RevokeInvitation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invitationID, ok := parseUUIDParam(c, "invitationID")
	if !ok {
		return
	}

	resp, err := h.invitationService.Revoke(userID, invitationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResendInvitation handles POST /invitations/:invitationID/resend
// @Summary Resend an invitation
// @Description Rotate the token of a live pending invitation, extend its expiry and send a fresh email. Admin only.
// @Tags invitations
// @Produce json
// @Param invitationID path string true "Invitation ID"
// @Success 200 {object} service.InvitationResponse "Invitation resent"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Invitation not found"
// @Failure 409 {object} ErrorResponse "Invitation no longer pending"
// @Failure 410 {object} ErrorResponse "Invitation expired"
// @Security BearerAuth
// @Router /invitations/{invitationID}/resend [post]
func (h *InvitationHandler) ResendInvitation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invitationID, ok := parseUUIDParam(c, "invitationID")
	if !ok {
		return
	}

	resp, err := h.invitationService.Resend(userID, invitationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
