package repository

import (
	"time"

	"teamflow-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	CreateWithOrganization(user *models.User, org *models.Organization) (*models.Membership, error)
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	CreateWithAdmin(org *models.Organization) (*models.Membership, error)
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetBySlug(slug string) (*models.Organization, error)
	GetByUserID(userID uuid.UUID) ([]models.Organization, error)
	Update(org *models.Organization) error
	Delete(id uuid.UUID) error
}

// MembershipRepositoryInterface defines the interface for membership repository
// operations. Role changes and removals enforce the last-admin invariant inside
// a single transaction.
type MembershipRepositoryInterface interface {
	Create(membership *models.Membership) error
	GetByUserAndOrg(userID, orgID uuid.UUID) (*models.Membership, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Membership, int64, error)
	CountAdmins(orgID uuid.UUID) (int64, error)
	UpdateRole(userID, orgID uuid.UUID, role models.Role) (*models.Membership, error)
	Remove(userID, orgID uuid.UUID) error
}

// InvitationRepositoryInterface defines the interface for invitation repository
// operations. Accept and Revoke are transactional state transitions guarded by
// row-level locks on the invitation.
type InvitationRepositoryInterface interface {
	Create(invitation *models.Invitation) error
	GetByID(id uuid.UUID) (*models.Invitation, error)
	GetByToken(token string) (*models.Invitation, error)
	GetPendingByOrgAndEmail(orgID uuid.UUID, email string, now time.Time) (*models.Invitation, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Invitation, int64, error)
	Accept(id, userID uuid.UUID, now time.Time) (*models.Invitation, *models.Membership, error)
	Revoke(id uuid.UUID) (*models.Invitation, error)
	MarkExpired(id uuid.UUID) error
	Update(invitation *models.Invitation) error
}

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Project, int64, error)
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(task *models.Task, assigneeIDs []uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Task, error)
	GetByProjectID(projectID uuid.UUID, limit, offset int) ([]models.Task, int64, error)
	Update(task *models.Task) error
	ReplaceAssignees(taskID uuid.UUID, assigneeIDs []uuid.UUID) error
	IsAssigned(taskID, userID uuid.UUID) (bool, error)
	Delete(id uuid.UUID) error
	AddComment(comment *models.TaskComment) error
	GetComments(taskID uuid.UUID) ([]models.TaskComment, error)
	AddWorkLog(workLog *models.TaskWorkLog) error
	GetWorkLogs(taskID uuid.UUID) ([]models.TaskWorkLog, error)
	SummarizeWorkLogs(orgID uuid.UUID, from, to time.Time) ([]WorkLogDailyTotal, error)
}
