package service

import (
	"errors"
	"fmt"
	"time"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/logger"
	"teamflow-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectService provides project-related business logic. Any member may
// create and edit projects; deletion is admin only.
type ProjectService struct {
	projects   repository.ProjectRepositoryInterface
	authorizer AuthorizerInterface
	validator  *validator.Validate
	log        *logger.Logger
}

// Ensure ProjectService implements ProjectServiceInterface
var _ ProjectServiceInterface = (*ProjectService)(nil)

// NewProjectService creates a new ProjectService
func NewProjectService(
	projects repository.ProjectRepositoryInterface,
	authorizer AuthorizerInterface,
	validator *validator.Validate,
) *ProjectService {
	return &ProjectService{
		projects:   projects,
		authorizer: authorizer,
		validator:  validator,
		log:        logger.New(),
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateProjectRequest represents the request to update a project
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	CreatorID      uuid.UUID `json:"creator_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create creates a project in the organization. Any member may create.
func (s *ProjectService) Create(actorID, orgID uuid.UUID, req *CreateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if err := s.authorizer.Authorize(actorID, orgID, models.RoleMember); err != nil {
		return nil, err
	}

	project := &models.Project{
		OrganizationID: orgID,
		CreatorID:      actorID,
		Name:           req.Name,
		Description:    req.Description,
	}

	if err := s.projects.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"project_id":      project.ID,
		"organization_id": orgID,
	}).Info("Project created")

	resp := toProjectResponse(project)
	return &resp, nil
}

// Get retrieves a project. Any member of its organization may read it.
func (s *ProjectService) Get(actorID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.loadAuthorized(actorID, projectID, models.RoleMember)
	if err != nil {
		return nil, err
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

// List retrieves an organization's projects with pagination
func (s *ProjectService) List(actorID, orgID uuid.UUID, page, pageSize int) (*ProjectListResponse, error) {
	if err := s.authorizer.Authorize(actorID, orgID, models.RoleMember); err != nil {
		return nil, err
	}

	page, pageSize = normalizePagination(page, pageSize)
	offset := (page - 1) * pageSize

	projects, total, err := s.projects.GetByOrganizationID(orgID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = toProjectResponse(&projects[i])
	}

	return &ProjectListResponse{
		Projects: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update updates a project. Any member may edit.
func (s *ProjectService) Update(actorID, projectID uuid.UUID, req *UpdateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	project, err := s.loadAuthorized(actorID, projectID, models.RoleMember)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.projects.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

// Delete deletes a project and its tasks. Admin only.
func (s *ProjectService) Delete(actorID, projectID uuid.UUID) error {
	project, err := s.loadAuthorized(actorID, projectID, models.RoleAdmin)
	if err != nil {
		return err
	}

	if err := s.projects.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.log.WithField("project_id", project.ID).Info("Project deleted")
	return nil
}

// loadAuthorized fetches a project and checks the actor's role in its
// organization
func (s *ProjectService) loadAuthorized(actorID, projectID uuid.UUID, required models.Role) (*models.Project, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.authorizer.Authorize(actorID, project.OrganizationID, required); err != nil {
		return nil, err
	}
	return project, nil
}

// toProjectResponse converts a Project model to API response
func toProjectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:             project.ID,
		OrganizationID: project.OrganizationID,
		CreatorID:      project.CreatorID,
		Name:           project.Name,
		Description:    project.Description,
		CreatedAt:      project.CreatedAt,
	}
}
