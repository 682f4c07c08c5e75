package handlers

import (
	"net/http"
	"strconv"

	"teamflow-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MembershipHandler handles HTTP requests for member management
type MembershipHandler struct {
	membershipService service.MembershipServiceInterface
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipService service.MembershipServiceInterface) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

// ListMembers handles GET /organizations/:orgID/members
// @Summary List organization members
// @Description Get all members of an organization with pagination
// @Tags members
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(50)
// @Success 200 {object} service.MemberListResponse "Members"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Security BearerAuth
// @Router /organizations/{orgID}/members [get]
func (h *MembershipHandler) ListMembers(c *gin.Context) {
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

	resp, err := h.membershipService.List(userID, orgID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateMemberRole handles PATCH /organizations/:orgID/members/:userID
// @Summary Change a member's role
// @Description Promote or demote a member. Admin only. Demoting the last admin fails with 409.
// @Tags members
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param userID path string true "User ID"
// @Param request body service.UpdateRoleRequest true "New role"
// @Success 200 {object} service.MemberResponse "Role updated"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Membership not found"
// @Failure 409 {object} ErrorResponse "Organization must keep at least one admin"
// @Security BearerAuth
// @Router /organizations/{orgID}/members/{userID} [patch]
func (h *MembershipHandler) UpdateMemberRole(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseUUIDParam(c, "orgID")
	if !ok {
		return
	}
	targetID, ok := parseUUIDParam(c, "userID")
	if !ok {
		return
	}

	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.membershipService.UpdateRole(actorID, orgID, targetID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RemoveMember handles DELETE /organizations/:orgID/members/:userID
// @Summary Remove a member
// @Description Remove a member from the organization. Admins may remove anyone; a member may remove themselves. Removing the last admin fails with 409.
// @Tags members
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param userID path string true "User ID"
// @Success 204 "Member removed"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Membership not found"
// @Failure 409 {object} ErrorResponse "Organization must keep at least one admin"
// @Security BearerAuth
// @Router /organizations/{orgID}/members/{userID} [delete]
func (h *MembershipHandler) RemoveMember(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseUUIDParam(c, "orgID")
	if !ok {
		return
	}
	targetID, ok := parseUUIDParam(c, "userID")
	if !ok {
		return
	}

	if err := h.membershipService.Remove(actorID, orgID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
