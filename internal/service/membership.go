package service

import (
	"errors"
	"fmt"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/logger"
	"teamflow-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipService provides member management within an organization. Role
// changes and removals delegate to the repository, which enforces the
// last-admin invariant transactionally.
type MembershipService struct {
	memberships repository.MembershipRepositoryInterface
	users       repository.UserRepositoryInterface
	authorizer  AuthorizerInterface
	validator   *validator.Validate
	log         *logger.Logger
}

// Ensure MembershipService implements MembershipServiceInterface
var _ MembershipServiceInterface = (*MembershipService)(nil)

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	memberships repository.MembershipRepositoryInterface,
	users repository.UserRepositoryInterface,
	authorizer AuthorizerInterface,
	validator *validator.Validate,
) *MembershipService {
	return &MembershipService{
		memberships: memberships,
		users:       users,
		authorizer:  authorizer,
		validator:   validator,
		log:         logger.New(),
	}
}

// UpdateRoleRequest represents a role change request
type UpdateRoleRequest struct {
	Role models.Role `json:"role" validate:"required"`
}

// MemberResponse represents an organization member in API responses
type MemberResponse struct {
	UserID         uuid.UUID   `json:"user_id"`
	OrganizationID uuid.UUID   `json:"organization_id"`
	FullName       string      `json:"full_name,omitempty"`
	Email          string      `json:"email,omitempty"`
	Role           models.Role `json:"role"`
}

// MemberListResponse represents a paginated list of members
type MemberListResponse struct {
	Members  []MemberResponse `json:"members"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// List retrieves an organization's members. Any member may list.
func (s *MembershipService) List(actorID, orgID uuid.UUID, page, pageSize int) (*MemberListResponse, error) {
	if err := s.authorizer.Authorize(actorID, orgID, models.RoleMember); err != nil {
		return nil, err
	}

	page, pageSize = normalizePagination(page, pageSize)
	offset := (page - 1) * pageSize

	memberships, total, err := s.memberships.GetByOrganizationID(orgID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	responses := make([]MemberResponse, len(memberships))
	for i := range memberships {
		responses[i] = toMemberResponse(&memberships[i], memberships[i].User)
	}

	return &MemberListResponse{
		Members:  responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateRole changes a member's role. Admin only. Demoting the last admin
// fails with ErrLastAdmin.
func (s *MembershipService) UpdateRole(actorID, orgID, targetUserID uuid.UUID, req *UpdateRoleRequest) (*MemberResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("role", fmt.Sprintf("invalid role: %s", req.Role))
	}

	if err := s.authorizer.Authorize(actorID, orgID, models.RoleAdmin); err != nil {
		return nil, err
	}

	membership, err := s.memberships.UpdateRole(targetUserID, orgID, req.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"organization_id": orgID,
		"user_id":         targetUserID,
		"role":            req.Role,
	}).Info("Member role updated")

	resp := toMemberResponse(membership, nil)
	return &resp, nil
}

// Remove removes a member from an organization. Admins may remove anyone;
// a member may remove themselves (leave). Removing the last admin fails with
// ErrLastAdmin, which also blocks the last admin from leaving.
func (s *MembershipService) Remove(actorID, orgID, targetUserID uuid.UUID) error {
	required := models.RoleAdmin
	if actorID == targetUserID {
		required = models.RoleMember
	}
	if err := s.authorizer.Authorize(actorID, orgID, required); err != nil {
		return err
	}

	if err := s.memberships.Remove(targetUserID, orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMembershipNotFound
		}
		return err
	}

	s.log.WithFields(map[string]interface{}{
		"organization_id": orgID,
		"user_id":         targetUserID,
	}).Info("Member removed")

	return nil
}

// toMemberResponse converts a Membership model to API response, enriching it
// with user details when available
func toMemberResponse(membership *models.Membership, user *models.User) MemberResponse {
	resp := MemberResponse{
		UserID:         membership.UserID,
		OrganizationID: membership.OrganizationID,
		Role:           membership.Role,
	}
	if user != nil {
		resp.FullName = user.FullName
		resp.Email = user.Email
	}
	return resp
}
