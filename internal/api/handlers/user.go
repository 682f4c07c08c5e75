package handlers

import (
	"net/http"
	"strconv"

	"teamflow-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user profile operations
type UserHandler struct {
	userService service.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpdateProfile handles PATCH /users/me
// @Summary Update the caller's profile
// @Description Update the authenticated user's own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} service.UserResponse "Profile updated"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListUsers handles GET /organizations/:orgID/users
// @Summary List an organization's users
// @Description Get the users belonging to an organization. Admin only.
// @Tags users
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(50)
// @Success 200 {object} service.UserListResponse "Users"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Security BearerAuth
// @Router /organizations/{orgID}/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
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

	resp, err := h.userService.ListByOrganization(userID, orgID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
