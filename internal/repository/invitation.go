package repository

import (
	"errors"
	"time"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvitationRepository handles database operations for invitations. State
// transitions lock the invitation row FOR UPDATE so that concurrent accepts
// or revokes serialize and the lifecycle stays linear:
// pending -> accepted | expired | revoked, all terminal.
type InvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create creates a new invitation
func (r *InvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// GetByID retrieves an invitation by ID
func (r *InvitationRepository) GetByID(id uuid.UUID) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.First(&invitation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetByToken retrieves an invitation by its opaque token
func (r *InvitationRepository) GetByToken(token string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.First(&invitation, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetPendingByOrgAndEmail retrieves a pending, unexpired invitation for the
// (organization, email) pair, if one exists
func (r *InvitationRepository) GetPendingByOrgAndEmail(orgID uuid.UUID, email string, now time.Time) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.First(&invitation,
		"organization_id = ? AND LOWER(email) = LOWER(?) AND status = ? AND expires_at > ?",
		orgID, email, models.InvitationPending, now).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetByOrganizationID retrieves all invitations for an organization with pagination
func (r *InvitationRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Invitation, int64, error) {
	var invitations []models.Invitation
	var total int64

	query := r.db.Model(&models.Invitation{}).Where("organization_id = ?", orgID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&invitations).Error
	if err != nil {
		return nil, 0, err
	}

	return invitations, total, nil
}

// Accept transitions a pending invitation to accepted and creates (or
// upgrades) the membership, atomically. The invitation row is locked for the
// duration, so exactly one of two concurrent accepts can succeed; the loser
// observes ErrInvitationNotPending.
//
// Acceptance past the expiry horizon persists the expired transition and
// returns ErrInvitationExpired; the lazy expiry is committed even though the
// accept itself fails.
func (r *InvitationRepository) Accept(id, userID uuid.UUID, now time.Time) (*models.Invitation, *models.Membership, error) {
	var invitation models.Invitation
	var membership models.Membership
	var expired bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&invitation, "id = ?", id).Error; err != nil {
			return err
		}

		if invitation.Status != models.InvitationPending {
			return apperrors.ErrInvitationNotPending
		}

		if invitation.IsExpired(now) {
			invitation.Status = models.InvitationExpired
			if err := tx.Save(&invitation).Error; err != nil {
				return err
			}
			// Commit the transition; the caller still gets an error.
			expired = true
			return nil
		}

		invitation.Status = models.InvitationAccepted
		invitation.AcceptedAt = &now
		if err := tx.Save(&invitation).Error; err != nil {
			return err
		}

		var existing models.Membership
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&existing, "user_id = ? AND organization_id = ?", userID, invitation.OrganizationID).Error
		if err == nil {
			// Already a member: upgrade if the invitation grants a higher role.
			if invitation.Role == models.RoleAdmin && existing.Role == models.RoleMember {
				existing.Role = models.RoleAdmin
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			}
			membership = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		membership = models.Membership{
			UserID:         userID,
			OrganizationID: invitation.OrganizationID,
			Role:           invitation.Role,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, nil, err
	}
	if expired {
		return &invitation, nil, apperrors.ErrInvitationExpired
	}
	return &invitation, &membership, nil
}

// Revoke transitions a pending invitation to revoked. Non-pending
// invitations fail with ErrInvitationNotPending.
func (r *InvitationRepository) Revoke(id uuid.UUID) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&invitation, "id = ?", id).Error; err != nil {
			return err
		}
		if invitation.Status != models.InvitationPending {
			return apperrors.ErrInvitationNotPending
		}
		invitation.Status = models.InvitationRevoked
		return tx.Save(&invitation).Error
	})
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// MarkExpired persists the lazy pending -> expired transition. A no-op if
// the invitation is no longer pending.
func (r *InvitationRepository) MarkExpired(id uuid.UUID) error {
	return r.db.Model(&models.Invitation{}).
		Where("id = ? AND status = ?", id, models.InvitationPending).
		Update("status", models.InvitationExpired).Error
}

// Update updates an invitation
func (r *InvitationRepository) Update(invitation *models.Invitation) error {
	return r.db.Save(invitation).Error
}
