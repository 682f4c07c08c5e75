package repository

import (
	"errors"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipRepository handles database operations for memberships.
// Demotions and removals run inside a transaction that locks the
// organization's admin rows, so the last-admin invariant holds under
// concurrent requests.
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create creates a new membership
func (r *MembershipRepository) Create(membership *models.Membership) error {
	return r.db.Create(membership).Error
}

// GetByUserAndOrg retrieves the membership for a (user, organization) pair
func (r *MembershipRepository) GetByUserAndOrg(userID, orgID uuid.UUID) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.First(&membership, "user_id = ? AND organization_id = ?", userID, orgID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByOrganizationID retrieves all memberships for an organization with pagination
func (r *MembershipRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Membership, int64, error) {
	var memberships []models.Membership
	var total int64

	query := r.db.Model(&models.Membership{}).Where("organization_id = ?", orgID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("User").
		Where("organization_id = ?", orgID).
		Order("created_at").
		Limit(limit).Offset(offset).
		Find(&memberships).Error
	if err != nil {
		return nil, 0, err
	}

	return memberships, total, nil
}

// CountAdmins counts admin memberships in an organization
func (r *MembershipRepository) CountAdmins(orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).
		Where("organization_id = ? AND role = ?", orgID, models.RoleAdmin).
		Count(&count).Error
	return count, err
}

// UpdateRole changes a membership's role. Demoting an admin locks the
// organization's admin rows and fails with ErrLastAdmin if no other admin
// would remain.
func (r *MembershipRepository) UpdateRole(userID, orgID uuid.UUID, role models.Role) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&membership, "user_id = ? AND organization_id = ?", userID, orgID).Error; err != nil {
			return err
		}

		if membership.Role == models.RoleAdmin && role != models.RoleAdmin {
			remaining, err := r.lockAdmins(tx, orgID)
			if err != nil {
				return err
			}
			if remaining <= 1 {
				return apperrors.ErrLastAdmin
			}
		}

		membership.Role = role
		return tx.Save(&membership).Error
	})
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// Remove deletes a membership. Removing an admin locks the organization's
// admin rows and fails with ErrLastAdmin if no other admin would remain.
func (r *MembershipRepository) Remove(userID, orgID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var membership models.Membership
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&membership, "user_id = ? AND organization_id = ?", userID, orgID).Error; err != nil {
			return err
		}

		if membership.Role == models.RoleAdmin {
			remaining, err := r.lockAdmins(tx, orgID)
			if err != nil {
				return err
			}
			if remaining <= 1 {
				return apperrors.ErrLastAdmin
			}
		}

		return tx.Delete(&membership).Error
	})
}

// lockAdmins locks the organization's admin rows for the duration of the
// transaction and returns how many there are. The lock serializes concurrent
// demotions that would otherwise both see "more than one admin".
func (r *MembershipRepository) lockAdmins(tx *gorm.DB, orgID uuid.UUID) (int64, error) {
	var admins []models.Membership
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization_id = ? AND role = ?", orgID, models.RoleAdmin).
		Find(&admins).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	return int64(len(admins)), nil
}
