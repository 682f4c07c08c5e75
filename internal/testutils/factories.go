package testutils

import (
	"fmt"
	"time"

	"teamflow-backend/internal/database/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// FactorySet bundles all model factories for convenient use in tests
type FactorySet struct {
	User         *UserFactory
	Organization *OrganizationFactory
	Membership   *MembershipFactory
	Invitation   *InvitationFactory
	Project      *ProjectFactory
	Task         *TaskFactory
}

// NewFactorySet creates a FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:         NewUserFactory(),
		Organization: NewOrganizationFactory(),
		Membership:   NewMembershipFactory(),
		Invitation:   NewInvitationFactory(),
		Project:      NewProjectFactory(),
		Task:         NewTaskFactory(),
	}
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. The email is unique per
// call so users can coexist in one test database.
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		FullName:     "Jane Doe",
		Email:        fmt.Sprintf("jane.%s@test.com", id.String()[:8]),
		PasswordHash: HashPassword("password123"),
		IsActive:     true,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// Inactive creates a deactivated user
func (f *UserFactory) Inactive() *models.User {
	user := f.Create()
	user.IsActive = false
	return user
}

// HashPassword bcrypt-hashes a plaintext password for fixtures. MinCost keeps
// test setup fast.
func HashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create(creatorID uuid.UUID) *models.Organization {
	id := uuid.New()
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:      "Test Organization",
		Slug:      fmt.Sprintf("test-org-%s", id.String()[:8]),
		CreatorID: creatorID,
	}
}

// WithName sets a custom name for the organization
func (f *OrganizationFactory) WithName(creatorID uuid.UUID, name string) *models.Organization {
	org := f.Create(creatorID)
	org.Name = name
	return org
}

// MembershipFactory provides methods to create test Membership data
type MembershipFactory struct{}

// NewMembershipFactory creates a new MembershipFactory
func NewMembershipFactory() *MembershipFactory {
	return &MembershipFactory{}
}

// Admin creates an admin membership
func (f *MembershipFactory) Admin(userID, orgID uuid.UUID) *models.Membership {
	return f.create(userID, orgID, models.RoleAdmin)
}

// Member creates a member membership
func (f *MembershipFactory) Member(userID, orgID uuid.UUID) *models.Membership {
	return f.create(userID, orgID, models.RoleMember)
}

func (f *MembershipFactory) create(userID, orgID uuid.UUID, role models.Role) *models.Membership {
	return &models.Membership{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
	}
}

// InvitationFactory provides methods to create test Invitation data
type InvitationFactory struct{}

// NewInvitationFactory creates a new InvitationFactory
func NewInvitationFactory() *InvitationFactory {
	return &InvitationFactory{}
}

// Pending creates a pending invitation expiring in 7 days
func (f *InvitationFactory) Pending(orgID, inviterID uuid.UUID, email string) *models.Invitation {
	id := uuid.New()
	return &models.Invitation{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: orgID,
		InviterID:      inviterID,
		Email:          email,
		Token:          fmt.Sprintf("test-token-%s", id.String()),
		Role:           models.RoleMember,
		Status:         models.InvitationPending,
		ExpiresAt:      time.Now().Add(7 * 24 * time.Hour),
	}
}

// Expired creates a pending invitation whose expiry is already in the past
func (f *InvitationFactory) Expired(orgID, inviterID uuid.UUID, email string) *models.Invitation {
	inv := f.Pending(orgID, inviterID, email)
	inv.ExpiresAt = time.Now().Add(-time.Hour)
	return inv
}

// WithRole sets the invited role
func (f *InvitationFactory) WithRole(inv *models.Invitation, role models.Role) *models.Invitation {
	inv.Role = role
	return inv
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project with default values
func (f *ProjectFactory) Create(orgID, creatorID uuid.UUID) *models.Project {
	return &models.Project{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: orgID,
		CreatorID:      creatorID,
		Name:           "Test Project",
		Description:    "A test project",
	}
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task with default values
func (f *TaskFactory) Create(orgID, projectID uuid.UUID) *models.Task {
	return &models.Task{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: orgID,
		ProjectID:      projectID,
		Title:          "Test Task",
		Description:    "A test task",
		Status:         models.TaskStatusOpen,
		Priority:       models.TaskPriorityMedium,
	}
}

// WithMemberEdit creates a task that assigned members may edit
func (f *TaskFactory) WithMemberEdit(orgID, projectID uuid.UUID) *models.Task {
	task := f.Create(orgID, projectID)
	task.AllowMemberEdit = true
	return task
}
