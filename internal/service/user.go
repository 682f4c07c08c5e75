package service

import (
	"errors"
	"fmt"
	"time"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService provides user profile business logic
type UserService struct {
	users      repository.UserRepositoryInterface
	authorizer AuthorizerInterface
	validator  *validator.Validate
}

// Ensure UserService implements UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepositoryInterface, authorizer AuthorizerInterface, validator *validator.Validate) *UserService {
	return &UserService{
		users:      users,
		authorizer: authorizer,
		validator:  validator,
	}
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Get retrieves a user by ID
func (s *UserService) Get(userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile updates the user's own profile
func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.FullName = req.FullName
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ListByOrganization lists the users belonging to an organization. Admin only.
func (s *UserService) ListByOrganization(actorID, orgID uuid.UUID, page, pageSize int) (*UserListResponse, error) {
	if err := s.authorizer.Authorize(actorID, orgID, models.RoleAdmin); err != nil {
		return nil, err
	}

	page, pageSize = normalizePagination(page, pageSize)
	offset := (page - 1) * pageSize

	users, total, err := s.users.GetByOrganizationID(orgID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := &UserListResponse{
		Users:    make([]UserResponse, 0, len(users)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range users {
		resp.Users = append(resp.Users, toUserResponse(&users[i]))
	}
	return resp, nil
}

// toUserResponse converts a User model to API response
func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
