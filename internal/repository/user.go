package repository

import (
	"teamflow-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithOrganization creates a user together with their personal
// organization and an admin membership, all in one transaction. This is the
// registration path: the creator becomes the organization's first admin.
func (r *UserRepository) CreateWithOrganization(user *models.User, org *models.Organization) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		org.CreatorID = user.ID
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		membership = models.Membership{
			UserID:         user.ID,
			OrganizationID: org.ID,
			Role:           models.RoleAdmin,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "LOWER(email) = LOWER(?)", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByOrganizationID retrieves all users holding a membership in an organization
func (r *UserRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{}).
		Joins("JOIN memberships ON memberships.user_id = users.id").
		Where("memberships.organization_id = ?", orgID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("users.full_name, users.email").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete deletes a user
func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}
