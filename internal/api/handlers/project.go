package handlers

import (
	"net/http"
	"strconv"

	"teamflow-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	projectService service.ProjectServiceInterface
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService service.ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject handles POST /organizations/:orgID/projects
// @Summary Create a project
// @Description Create a project in the organization. Any member may create.
// @Tags projects
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param request body service.CreateProjectRequest true "Project details"
// @Success 201 {object} service.ProjectResponse "Project created"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Security BearerAuth
// @Router /organizations/{orgID}/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseUUIDParam(c, "orgID")
	if !ok {
		return
	}

	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.projectService.Create(userID, orgID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListProjects handles GET /organizations/:orgID/projects
// @Summary List an organization's projects
// @Description Get all projects in the organization with pagination
// @Tags projects
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(50)
// @Success 200 {object} service.ProjectListResponse "Projects"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Security BearerAuth
// @Router /organizations/{orgID}/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
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

	resp, err := h.projectService.List(userID, orgID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProject handles GET /projects/:projectID
// @Summary Get a project
// @Description Get a project the caller's organization owns
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} service.ProjectResponse "Project"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{projectID} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseUUIDParam(c, "projectID")
	if !ok {
		return
	}

	resp, err := h.projectService.Get(userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProject handles PATCH /projects/:projectID
// @Summary Update a project
// @Description Update a project's name or description. Any member may edit.
// @Tags projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param request body service.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} service.ProjectResponse "Project updated"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{projectID} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseUUIDParam(c, "projectID")
	if !ok {
		return
	}

	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.projectService.Update(userID, projectID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteProject handles DELETE /projects/:projectID
// @Summary Delete a project
// @Description Delete a project and all its tasks. Admin only.
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 204 "Project deleted"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{projectID} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseUUIDParam(c, "projectID")
	if !ok {
		return
	}

	if err := h.projectService.Delete(userID, projectID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
