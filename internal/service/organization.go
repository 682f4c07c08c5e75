package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/logger"
	"teamflow-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationService provides organization-related business logic
type OrganizationService struct {
	organizations repository.OrganizationRepositoryInterface
	authorizer    AuthorizerInterface
	validator     *validator.Validate
	log           *logger.Logger
}

// Ensure OrganizationService implements OrganizationServiceInterface
var _ OrganizationServiceInterface = (*OrganizationService)(nil)

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(
	organizations repository.OrganizationRepositoryInterface,
	authorizer AuthorizerInterface,
	validator *validator.Validate,
) *OrganizationService {
	return &OrganizationService{
		organizations: organizations,
		authorizer:    authorizer,
		validator:     validator,
		log:           logger.New(),
	}
}

// CreateOrganizationRequest represents the request to create an organization
type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateOrganizationRequest represents the request to rename an organization
type UpdateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// OrganizationResponse represents an organization in API responses
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatorID uuid.UUID `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Create creates a new organization with the actor as its first admin
func (s *OrganizationService) Create(actorID uuid.UUID, req *CreateOrganizationRequest) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	org := &models.Organization{
		Name:      req.Name,
		Slug:      Slugify(req.Name),
		CreatorID: actorID,
	}

	_, err := s.organizations.CreateWithAdmin(org)
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		// Slug collision: retry once with a random suffix.
		base := org.Slug
		if len(base) > 41 {
			base = base[:41]
		}
		org.Slug = fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
		_, err = s.organizations.CreateWithAdmin(org)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"organization_id": org.ID,
		"creator_id":      actorID,
	}).Info("Organization created")

	resp := toOrganizationResponse(org)
	return &resp, nil
}

// Get retrieves an organization. Any member may read it.
func (s *OrganizationService) Get(actorID, orgID uuid.UUID) (*OrganizationResponse, error) {
	if err := s.authorizer.Authorize(actorID, orgID, models.RoleMember); err != nil {
		return nil, err
	}

	org, err := s.organizations.GetByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	resp := toOrganizationResponse(org)
	return &resp, nil
}

// Update renames an organization. Admin only; the slug is immutable.
func (s *OrganizationService) Update(actorID, orgID uuid.UUID, req *UpdateOrganizationRequest) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if err := s.authorizer.Authorize(actorID, orgID, models.RoleAdmin); err != nil {
		return nil, err
	}

	org, err := s.organizations.GetByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	org.Name = req.Name
	if err := s.organizations.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	resp := toOrganizationResponse(org)
	return &resp, nil
}

// ListForUser retrieves all organizations the user belongs to
func (s *OrganizationService) ListForUser(userID uuid.UUID) ([]OrganizationResponse, error) {
	orgs, err := s.organizations.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	responses := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = toOrganizationResponse(&orgs[i])
	}
	return responses, nil
}

// Slugify derives a URL-safe slug from an organization name
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "org"
	}
	if len(slug) > 50 {
		slug = strings.Trim(slug[:50], "-")
	}
	return slug
}

// toOrganizationResponse converts an Organization model to API response
func toOrganizationResponse(org *models.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		CreatorID: org.CreatorID,
		CreatedAt: org.CreatedAt,
	}
}
