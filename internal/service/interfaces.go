package service

import (
	"context"
	"time"

	"teamflow-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// AuthorizerInterface decides whether an actor may act on an organization
type AuthorizerInterface interface {
	Authorize(actorID, organizationID uuid.UUID, required models.Role) error
}

// NotificationSender delivers invitation emails. Implementations must be safe
// for concurrent use; sends happen on background goroutines.
type NotificationSender interface {
	IsEnabled() bool
	SendInvitationEmail(ctx context.Context, toEmail, inviterName, orgName, role, invitationLink string) error
}

// InvitationServiceInterface defines the interface for invitation operations
type InvitationServiceInterface interface {
	Issue(actorID, orgID uuid.UUID, req *IssueInvitationRequest) (*InvitationResponse, error)
	Accept(userID uuid.UUID, token string) (*AcceptInvitationResponse, error)
	Revoke(actorID, invitationID uuid.UUID) (*InvitationResponse, error)
	Resend(actorID, invitationID uuid.UUID) (*InvitationResponse, error)
	Validate(token string) (*ValidateInvitationResponse, error)
	List(actorID, orgID uuid.UUID, page, pageSize int) (*InvitationListResponse, error)
}

// MembershipServiceInterface defines the interface for membership operations
type MembershipServiceInterface interface {
	List(actorID, orgID uuid.UUID, page, pageSize int) (*MemberListResponse, error)
	UpdateRole(actorID, orgID, targetUserID uuid.UUID, req *UpdateRoleRequest) (*MemberResponse, error)
	Remove(actorID, orgID, targetUserID uuid.UUID) error
}

// OrganizationServiceInterface defines the interface for organization operations
type OrganizationServiceInterface interface {
	Create(actorID uuid.UUID, req *CreateOrganizationRequest) (*OrganizationResponse, error)
	Get(actorID, orgID uuid.UUID) (*OrganizationResponse, error)
	Update(actorID, orgID uuid.UUID, req *UpdateOrganizationRequest) (*OrganizationResponse, error)
	ListForUser(userID uuid.UUID) ([]OrganizationResponse, error)
}

// ProjectServiceInterface defines the interface for project operations
type ProjectServiceInterface interface {
	Create(actorID, orgID uuid.UUID, req *CreateProjectRequest) (*ProjectResponse, error)
	Get(actorID, projectID uuid.UUID) (*ProjectResponse, error)
	List(actorID, orgID uuid.UUID, page, pageSize int) (*ProjectListResponse, error)
	Update(actorID, projectID uuid.UUID, req *UpdateProjectRequest) (*ProjectResponse, error)
	Delete(actorID, projectID uuid.UUID) error
}

// TaskServiceInterface defines the interface for task operations
type TaskServiceInterface interface {
	Create(actorID, projectID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error)
	Get(actorID, taskID uuid.UUID) (*TaskResponse, error)
	List(actorID, projectID uuid.UUID, page, pageSize int) (*TaskListResponse, error)
	Update(actorID, taskID uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error)
	Delete(actorID, taskID uuid.UUID) error
	AddComment(actorID, taskID uuid.UUID, req *AddCommentRequest) (*CommentResponse, error)
	ListComments(actorID, taskID uuid.UUID) ([]CommentResponse, error)
	AddWorkLog(actorID, taskID uuid.UUID, req *AddWorkLogRequest) (*WorkLogResponse, error)
	ListWorkLogs(actorID, taskID uuid.UUID) ([]WorkLogResponse, error)
	WorkLogSummary(actorID, orgID uuid.UUID, from, to time.Time) (*WorkLogSummaryResponse, error)
}

// UserServiceInterface defines the interface for user operations
type UserServiceInterface interface {
	Get(userID uuid.UUID) (*UserResponse, error)
	UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error)
	ListByOrganization(actorID, orgID uuid.UUID, page, pageSize int) (*UserListResponse, error)
}
