package handlers

import (
	"net/http"

	"teamflow-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles HTTP requests for organization operations
type OrganizationHandler struct {
	organizationService service.OrganizationServiceInterface
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(organizationService service.OrganizationServiceInterface) *OrganizationHandler {
	return &OrganizationHandler{
		organizationService: organizationService,
	}
}

// CreateOrganization handles POST /organizations
// @Summary Create an organization
// @Description Create a new organization with the caller as its first admin
// @Tags organizations
// @Accept json
// @Produce json
// @Param request body service.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} service.OrganizationResponse "Organization created"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /organizations [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.organizationService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListOrganizations handles GET /organizations
// @Summary List the caller's organizations
// @Description Get all organizations the authenticated user belongs to
// @Tags organizations
// @Produce json
// @Success 200 {array} service.OrganizationResponse "Organizations"
// @Security BearerAuth
// @Router /organizations [get]
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.organizationService.ListForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetOrganization handles GET /organizations/:orgID
// @Summary Get an organization
// @Description Get an organization the caller is a member of
// @Tags organizations
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} service.OrganizationResponse "Organization"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse "Organization not found"
// @Security BearerAuth
// @Router /organizations/{orgID} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseUUIDParam(c, "orgID")
	if !ok {
		return
	}

	resp, err := h.organizationService.Get(userID, orgID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateOrganization handles PATCH /organizations/:orgID
// @Summary Rename an organization
// @Description Rename an organization. Admin only.
// @Tags organizations
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param request body service.UpdateOrganizationRequest true "New name"
// @Success 200 {object} service.OrganizationResponse "Organization updated"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Organization not found"
// @Security BearerAuth
// @Router /organizations/{orgID} [patch]
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseUUIDParam(c, "orgID")
	if !ok {
		return
	}

	var req service.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.organizationService.Update(userID, orgID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
