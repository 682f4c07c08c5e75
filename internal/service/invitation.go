package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
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

const emailSendTimeout = 10 * time.Second

// InvitationService owns the invitation lifecycle: issuing, accepting,
// revoking, resending and validating invitations. The invitation record is
// authoritative; email delivery is best-effort and never blocks or fails an
// operation.
type InvitationService struct {
	invitations   repository.InvitationRepositoryInterface
	memberships   repository.MembershipRepositoryInterface
	users         repository.UserRepositoryInterface
	organizations repository.OrganizationRepositoryInterface
	authorizer    AuthorizerInterface
	sender        NotificationSender
	validator     *validator.Validate
	expiry        time.Duration
	frontendURL   string
	log           *logger.Logger
}

// Ensure InvitationService implements InvitationServiceInterface
var _ InvitationServiceInterface = (*InvitationService)(nil)

// NewInvitationService creates a new InvitationService
func NewInvitationService(
	invitations repository.InvitationRepositoryInterface,
	memberships repository.MembershipRepositoryInterface,
	users repository.UserRepositoryInterface,
	organizations repository.OrganizationRepositoryInterface,
	authorizer AuthorizerInterface,
	sender NotificationSender,
	validator *validator.Validate,
	expiry time.Duration,
	frontendURL string,
) *InvitationService {
	return &InvitationService{
		invitations:   invitations,
		memberships:   memberships,
		users:         users,
		organizations: organizations,
		authorizer:    authorizer,
		sender:        sender,
		validator:     validator,
		expiry:        expiry,
		frontendURL:   frontendURL,
		log:           logger.New(),
	}
}

// IssueInvitationRequest represents the request to invite someone
type IssueInvitationRequest struct {
	Email string      `json:"email" validate:"required,email,max=255"`
	Role  models.Role `json:"role" validate:"required"`
}

// InvitationResponse represents an invitation in API responses
type InvitationResponse struct {
	ID             uuid.UUID               `json:"id"`
	OrganizationID uuid.UUID               `json:"organization_id"`
	InviterID      uuid.UUID               `json:"inviter_id"`
	Email          string                  `json:"email"`
	Role           models.Role             `json:"role"`
	Status         models.InvitationStatus `json:"status"`
	ExpiresAt      time.Time               `json:"expires_at"`
	AcceptedAt     *time.Time              `json:"accepted_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// InvitationListResponse represents a paginated list of invitations
type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

// AcceptInvitationResponse represents the result of accepting an invitation
type AcceptInvitationResponse struct {
	Invitation InvitationResponse `json:"invitation"`
	Membership MemberResponse     `json:"membership"`
}

// ValidateInvitationResponse represents a token lookup for the accept page
type ValidateInvitationResponse struct {
	OrganizationName string      `json:"organization_name"`
	Email            string      `json:"email"`
	Role             models.Role `json:"role"`
	ExpiresAt        time.Time   `json:"expires_at"`
}

// Issue creates a pending invitation and sends the invitation email
// asynchronously. Only admins may invite. An email that already belongs to a
// member, or that already has a live pending invitation, is rejected.
func (s *InvitationService) Issue(actorID, orgID uuid.UUID, req *IssueInvitationRequest) (*InvitationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("role", fmt.Sprintf("invalid role: %s", req.Role))
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

	// The invited email may already belong to a member.
	if existing, err := s.users.GetByEmail(req.Email); err == nil {
		_, err := s.memberships.GetByUserAndOrg(existing.ID, orgID)
		if err == nil {
			return nil, apperrors.ErrMembershipExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	now := time.Now().UTC()
	if _, err := s.invitations.GetPendingByOrgAndEmail(orgID, req.Email, now); err == nil {
		return nil, apperrors.ErrInvitationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending invitations: %w", err)
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	invitation := &models.Invitation{
		OrganizationID: orgID,
		InviterID:      actorID,
		Email:          strings.ToLower(req.Email),
		Token:          token,
		Role:           req.Role,
		Status:         models.InvitationPending,
		ExpiresAt:      now.Add(s.expiry),
	}

	if err := s.invitations.Create(invitation); err != nil {
		// The partial unique index on pending (org, email) closes the race
		// between the check above and this insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrInvitationExists
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"invitation_id":   invitation.ID,
		"organization_id": orgID,
		"role":            invitation.Role,
	}).Info("Invitation issued")

	inviterName := ""
	if inviter, err := s.users.GetByID(actorID); err == nil {
		inviterName = inviter.FullName
	}
	s.sendAsync(invitation, inviterName, org.Name)

	resp := toInvitationResponse(invitation)
	return &resp, nil
}

// Accept redeems an invitation token for the authenticated user. The token's
// email must match the user's email; the state transition itself is atomic
// and handled by the repository.
func (s *InvitationService) Accept(userID uuid.UUID, token string) (*AcceptInvitationResponse, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	invitation, err := s.invitations.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if !strings.EqualFold(invitation.Email, user.Email) {
		return nil, apperrors.ErrInvitationEmailMismatch
	}

	accepted, membership, err := s.invitations.Accept(invitation.ID, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"invitation_id":   accepted.ID,
		"organization_id": accepted.OrganizationID,
		"user_id":         userID,
	}).Info("Invitation accepted")

	return &AcceptInvitationResponse{
		Invitation: toInvitationResponse(accepted),
		Membership: toMemberResponse(membership, user),
	}, nil
}

// Revoke cancels a pending invitation. Only admins of the invitation's
// organization may revoke.
func (s *InvitationService) Revoke(actorID, invitationID uuid.UUID) (*InvitationResponse, error) {
	invitation, err := s.invitations.GetByID(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if err := s.authorizer.Authorize(actorID, invitation.OrganizationID, models.RoleAdmin); err != nil {
		return nil, err
	}

	revoked, err := s.invitations.Revoke(invitation.ID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"invitation_id":   revoked.ID,
		"organization_id": revoked.OrganizationID,
	}).Info("Invitation revoked")

	resp := toInvitationResponse(revoked)
	return &resp, nil
}

// Resend rotates the token of a live pending invitation, extends its expiry
// and sends a fresh email. The old token stops working immediately.
func (s *InvitationService) Resend(actorID, invitationID uuid.UUID) (*InvitationResponse, error) {
	invitation, err := s.invitations.GetByID(invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if err := s.authorizer.Authorize(actorID, invitation.OrganizationID, models.RoleAdmin); err != nil {
		return nil, err
	}

	if invitation.Status != models.InvitationPending {
		return nil, apperrors.ErrInvitationNotPending
	}

	now := time.Now().UTC()
	if invitation.IsExpired(now) {
		if err := s.invitations.MarkExpired(invitation.ID); err != nil {
			return nil, fmt.Errorf("failed to mark invitation expired: %w", err)
		}
		return nil, apperrors.ErrInvitationExpired
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	invitation.Token = token
	invitation.ExpiresAt = now.Add(s.expiry)
	if err := s.invitations.Update(invitation); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	org, err := s.organizations.GetByID(invitation.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	inviterName := ""
	if inviter, err := s.users.GetByID(actorID); err == nil {
		inviterName = inviter.FullName
	}
	s.sendAsync(invitation, inviterName, org.Name)

	resp := toInvitationResponse(invitation)
	return &resp, nil
}

// Validate resolves a token for the public accept page without requiring
// authentication. Expired pending invitations are marked expired on the spot.
func (s *InvitationService) Validate(token string) (*ValidateInvitationResponse, error) {
	invitation, err := s.invitations.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if invitation.Status != models.InvitationPending {
		return nil, apperrors.ErrInvitationNotPending
	}

	if invitation.IsExpired(time.Now().UTC()) {
		if err := s.invitations.MarkExpired(invitation.ID); err != nil {
			return nil, fmt.Errorf("failed to mark invitation expired: %w", err)
		}
		return nil, apperrors.ErrInvitationExpired
	}

	org, err := s.organizations.GetByID(invitation.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &ValidateInvitationResponse{
		OrganizationName: org.Name,
		Email:            invitation.Email,
		Role:             invitation.Role,
		ExpiresAt:        invitation.ExpiresAt,
	}, nil
}

// List retrieves an organization's invitations. Admin only.
func (s *InvitationService) List(actorID, orgID uuid.UUID, page, pageSize int) (*InvitationListResponse, error) {
	if err := s.authorizer.Authorize(actorID, orgID, models.RoleAdmin); err != nil {
		return nil, err
	}

	page, pageSize = normalizePagination(page, pageSize)
	offset := (page - 1) * pageSize

	invitations, total, err := s.invitations.GetByOrganizationID(orgID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	responses := make([]InvitationResponse, len(invitations))
	for i := range invitations {
		responses[i] = toInvitationResponse(&invitations[i])
	}

	return &InvitationListResponse{
		Invitations: responses,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

// sendAsync fires the invitation email on a background goroutine. Failures
// are logged, never surfaced: the invitation already exists and can be
// resent.
func (s *InvitationService) sendAsync(invitation *models.Invitation, inviterName, orgName string) {
	link := fmt.Sprintf("%s/invitations/accept?token=%s", s.frontendURL, invitation.Token)
	email := invitation.Email
	role := string(invitation.Role)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emailSendTimeout)
		defer cancel()

		if err := s.sender.SendInvitationEmail(ctx, email, inviterName, orgName, role, link); err != nil {
			s.log.WithError(err).WithField("invitation_id", invitation.ID).
				Warn("Failed to send invitation email")
		}
	}()
}

// generateInvitationToken returns a 32-byte random token, URL-safe encoded
func generateInvitationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// toInvitationResponse converts an Invitation model to API response
func toInvitationResponse(invitation *models.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:             invitation.ID,
		OrganizationID: invitation.OrganizationID,
		InviterID:      invitation.InviterID,
		Email:          invitation.Email,
		Role:           invitation.Role,
		Status:         invitation.Status,
		ExpiresAt:      invitation.ExpiresAt,
		AcceptedAt:     invitation.AcceptedAt,
		CreatedAt:      invitation.CreatedAt,
	}
}

// normalizePagination clamps page and pageSize to sane bounds
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}
	return page, pageSize
}
