package service

import (
	"errors"
	"fmt"
	"time"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/logger"
	"teamflow-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService provides task-related business logic. Tasks are admin-managed:
// members may only edit a task when they are assigned to it and the task has
// member editing enabled.
type TaskService struct {
	tasks       repository.TaskRepositoryInterface
	projects    repository.ProjectRepositoryInterface
	memberships repository.MembershipRepositoryInterface
	authorizer  AuthorizerInterface
	validator   *validator.Validate
	log         *logger.Logger
}

// Ensure TaskService implements TaskServiceInterface
var _ TaskServiceInterface = (*TaskService)(nil)

// NewTaskService creates a new TaskService
func NewTaskService(
	tasks repository.TaskRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	memberships repository.MembershipRepositoryInterface,
	authorizer AuthorizerInterface,
	validator *validator.Validate,
) *TaskService {
	return &TaskService{
		tasks:       tasks,
		projects:    projects,
		memberships: memberships,
		authorizer:  authorizer,
		validator:   validator,
		log:         logger.New(),
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title           string              `json:"title" validate:"required,min=1,max=200"`
	Description     string              `json:"description" validate:"max=1000"`
	Priority        models.TaskPriority `json:"priority,omitempty"`
	DueDate         *time.Time          `json:"due_date,omitempty"`
	AllowMemberEdit bool                `json:"allow_member_edit"`
	AssigneeIDs     []uuid.UUID         `json:"assignee_ids,omitempty"`
}

// UpdateTaskRequest represents the request to update a task. Nil fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title           *string              `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string              `json:"description,omitempty" validate:"omitempty,max=1000"`
	Status          *models.TaskStatus   `json:"status,omitempty"`
	Priority        *models.TaskPriority `json:"priority,omitempty"`
	DueDate         *time.Time           `json:"due_date,omitempty"`
	AllowMemberEdit *bool                `json:"allow_member_edit,omitempty"`
	AssigneeIDs     []uuid.UUID          `json:"assignee_ids,omitempty"`
}

// AddCommentRequest represents the request to comment on a task
type AddCommentRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// AddWorkLogRequest represents the request to log hours on a task
type AddWorkLogRequest struct {
	Hours       float64    `json:"hours" validate:"required,gt=0"`
	Description string     `json:"description" validate:"max=500"`
	Date        *time.Time `json:"date,omitempty"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrganizationID  uuid.UUID           `json:"organization_id"`
	ProjectID       uuid.UUID           `json:"project_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Status          models.TaskStatus   `json:"status"`
	Priority        models.TaskPriority `json:"priority"`
	DueDate         *time.Time          `json:"due_date,omitempty"`
	AllowMemberEdit bool                `json:"allow_member_edit"`
	Assignees       []UserResponse      `json:"assignees"`
	CreatedAt       time.Time           `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks    []TaskResponse `json:"tasks"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// CommentResponse represents a task comment in API responses
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkLogResponse represents a work log entry in API responses
type WorkLogResponse struct {
	ID          uuid.UUID `json:"id"`
	TaskID      uuid.UUID `json:"task_id"`
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// DailyWorkLogEntry is one day's total logged hours
type DailyWorkLogEntry struct {
	Day   time.Time `json:"day"`
	Hours float64   `json:"hours"`
}

// WorkLogSummaryResponse aggregates an organization's logged hours over a
// date range, with a per-day breakdown
type WorkLogSummaryResponse struct {
	From       time.Time           `json:"from"`
	To         time.Time           `json:"to"`
	TotalHours float64             `json:"total_hours"`
	TodayHours float64             `json:"today_hours"`
	Daily      []DailyWorkLogEntry `json:"daily"`
}

// Create creates a task in a project. Admin only. Every assignee must be a
// member of the project's organization.
func (s *TaskService) Create(actorID, projectID uuid.UUID, req *CreateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	project, err := s.projects.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.authorizer.Authorize(actorID, project.OrganizationID, models.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.checkAssignees(project.OrganizationID, req.AssigneeIDs); err != nil {
		return nil, err
	}

	task := &models.Task{
		OrganizationID:  project.OrganizationID,
		ProjectID:       project.ID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          models.TaskStatusOpen,
		Priority:        models.TaskPriorityMedium,
		DueDate:         req.DueDate,
		AllowMemberEdit: req.AllowMemberEdit,
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}

	if err := s.tasks.Create(task, req.AssigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"task_id":    task.ID,
		"project_id": project.ID,
	}).Info("Task created")

	return s.getResponse(task.ID)
}

// Get retrieves a task. Any member of its organization may read it.
func (s *TaskService) Get(actorID, taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(actorID, task.OrganizationID, models.RoleMember); err != nil {
		return nil, err
	}

	resp := toTaskResponse(task)
	return &resp, nil
}

// List retrieves a project's tasks with pagination
func (s *TaskService) List(actorID, projectID uuid.UUID, page, pageSize int) (*TaskListResponse, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.authorizer.Authorize(actorID, project.OrganizationID, models.RoleMember); err != nil {
		return nil, err
	}

	page, pageSize = normalizePagination(page, pageSize)
	offset := (page - 1) * pageSize

	tasks, total, err := s.tasks.GetByProjectID(projectID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = toTaskResponse(&tasks[i])
	}

	return &TaskListResponse{
		Tasks:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update updates a task. Admins may change anything. A member may edit only
// when assigned to the task and the task allows member editing, and even then
// may not touch the member-edit flag or the assignee set.
func (s *TaskService) Update(actorID, taskID uuid.UUID, req *UpdateTaskRequest) (*TaskResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if req.Status != nil && !isValidTaskStatus(*req.Status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("invalid status: %s", *req.Status))
	}
	if req.Priority != nil && !isValidTaskPriority(*req.Priority) {
		return nil, apperrors.NewValidationError("priority", fmt.Sprintf("invalid priority: %s", *req.Priority))
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	isAdmin := true
	if err := s.authorizer.Authorize(actorID, task.OrganizationID, models.RoleAdmin); err != nil {
		if !errors.Is(err, apperrors.ErrAdminRequired) {
			return nil, err
		}
		isAdmin = false
	}

	if !isAdmin {
		assigned, err := s.tasks.IsAssigned(taskID, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to check assignment: %w", err)
		}
		if !assigned || !task.AllowMemberEdit {
			return nil, apperrors.ErrTaskEditNotAllowed
		}
		if req.AllowMemberEdit != nil || req.AssigneeIDs != nil {
			return nil, apperrors.ErrTaskEditNotAllowed
		}
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AllowMemberEdit != nil {
		task.AllowMemberEdit = *req.AllowMemberEdit
	}

	// Save ignores the Assignees association; the preloaded slice is stale
	// only in memory.
	task.Assignees = nil
	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if req.AssigneeIDs != nil {
		if err := s.checkAssignees(task.OrganizationID, req.AssigneeIDs); err != nil {
			return nil, err
		}
		if err := s.tasks.ReplaceAssignees(taskID, req.AssigneeIDs); err != nil {
			return nil, fmt.Errorf("failed to replace assignees: %w", err)
		}
	}

	return s.getResponse(taskID)
}

// Delete deletes a task. Admin only.
func (s *TaskService) Delete(actorID, taskID uuid.UUID) error {
	task, err := s.loadTask(taskID)
	if err != nil {
		return err
	}
	if err := s.authorizer.Authorize(actorID, task.OrganizationID, models.RoleAdmin); err != nil {
		return err
	}

	if err := s.tasks.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.log.WithField("task_id", taskID).Info("Task deleted")
	return nil
}

// AddComment creates a comment on a task. Any member may comment.
func (s *TaskService) AddComment(actorID, taskID uuid.UUID, req *AddCommentRequest) (*CommentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(actorID, task.OrganizationID, models.RoleMember); err != nil {
		return nil, err
	}

	comment := &models.TaskComment{
		TaskID:  taskID,
		UserID:  actorID,
		Message: req.Message,
	}
	if err := s.tasks.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	resp := toCommentResponse(comment)
	return &resp, nil
}

// ListComments retrieves a task's comments, oldest first
func (s *TaskService) ListComments(actorID, taskID uuid.UUID) ([]CommentResponse, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(actorID, task.OrganizationID, models.RoleMember); err != nil {
		return nil, err
	}

	comments, err := s.tasks.GetComments(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = toCommentResponse(&comments[i])
	}
	return responses, nil
}

// AddWorkLog records hours against a task. Any member may log time.
func (s *TaskService) AddWorkLog(actorID, taskID uuid.UUID, req *AddWorkLogRequest) (*WorkLogResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(actorID, task.OrganizationID, models.RoleMember); err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	workLog := &models.TaskWorkLog{
		TaskID:      taskID,
		UserID:      actorID,
		Hours:       req.Hours,
		Description: req.Description,
		Date:        date,
	}
	if err := s.tasks.AddWorkLog(workLog); err != nil {
		return nil, fmt.Errorf("failed to add work log: %w", err)
	}

	resp := toWorkLogResponse(workLog)
	return &resp, nil
}

// ListWorkLogs retrieves a task's work logs, newest first
func (s *TaskService) ListWorkLogs(actorID, taskID uuid.UUID) ([]WorkLogResponse, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(actorID, task.OrganizationID, models.RoleMember); err != nil {
		return nil, err
	}

	workLogs, err := s.tasks.GetWorkLogs(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs: %w", err)
	}

	responses := make([]WorkLogResponse, len(workLogs))
	for i := range workLogs {
		responses[i] = toWorkLogResponse(&workLogs[i])
	}
	return responses, nil
}

// WorkLogSummary totals the hours logged across an organization's tasks
// between from and to, defaulting to the current week (Monday through Sunday)
// when no range is given. Any member may read it.
func (s *TaskService) WorkLogSummary(actorID, orgID uuid.UUID, from, to time.Time) (*WorkLogSummaryResponse, error) {
	if err := s.authorizer.Authorize(actorID, orgID, models.RoleMember); err != nil {
		return nil, err
	}

	if from.IsZero() || to.IsZero() {
		from, to = weekBounds(time.Now().UTC())
	}
	if to.Before(from) {
		return nil, apperrors.NewValidationError("to", "range end precedes its start")
	}

	totals, err := s.tasks.SummarizeWorkLogs(orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize work logs: %w", err)
	}

	resp := &WorkLogSummaryResponse{
		From:  from,
		To:    to,
		Daily: make([]DailyWorkLogEntry, 0, len(totals)),
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, t := range totals {
		resp.TotalHours += t.Hours
		if t.Day.UTC().Truncate(24 * time.Hour).Equal(today) {
			resp.TodayHours = t.Hours
		}
		resp.Daily = append(resp.Daily, DailyWorkLogEntry{Day: t.Day, Hours: t.Hours})
	}
	return resp, nil
}

// weekBounds returns the Monday and Sunday of the week containing now
func weekBounds(now time.Time) (time.Time, time.Time) {
	day := now.Truncate(24 * time.Hour)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := day.AddDate(0, 0, 1-weekday)
	return start, start.AddDate(0, 0, 6)
}

// loadTask fetches a task, mapping a missing row to ErrTaskNotFound
func (s *TaskService) loadTask(taskID uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// getResponse re-reads a task so the response carries fresh assignees
func (s *TaskService) getResponse(taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	resp := toTaskResponse(task)
	return &resp, nil
}

// checkAssignees verifies every assignee is a member of the organization
func (s *TaskService) checkAssignees(orgID uuid.UUID, assigneeIDs []uuid.UUID) error {
	for _, id := range assigneeIDs {
		_, err := s.memberships.GetByUserAndOrg(id, orgID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewValidationError("assignee_ids", fmt.Sprintf("assignee %s is not a member of the organization", id))
			}
			return fmt.Errorf("failed to check assignee membership: %w", err)
		}
	}
	return nil
}

func isValidTaskStatus(s models.TaskStatus) bool {
	return s == models.TaskStatusOpen || s == models.TaskStatusInProgress || s == models.TaskStatusDone
}

func isValidTaskPriority(p models.TaskPriority) bool {
	return p == models.TaskPriorityLow || p == models.TaskPriorityMedium || p == models.TaskPriorityHigh
}

// toTaskResponse converts a Task model to API response
func toTaskResponse(task *models.Task) TaskResponse {
	assignees := make([]UserResponse, len(task.Assignees))
	for i := range task.Assignees {
		assignees[i] = toUserResponse(&task.Assignees[i])
	}
	return TaskResponse{
		ID:              task.ID,
		OrganizationID:  task.OrganizationID,
		ProjectID:       task.ProjectID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		Priority:        task.Priority,
		DueDate:         task.DueDate,
		AllowMemberEdit: task.AllowMemberEdit,
		Assignees:       assignees,
		CreatedAt:       task.CreatedAt,
	}
}

// toCommentResponse converts a TaskComment model to API response
func toCommentResponse(comment *models.TaskComment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		UserID:    comment.UserID,
		Message:   comment.Message,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		resp.UserName = comment.User.FullName
	}
	return resp
}

// toWorkLogResponse converts a TaskWorkLog model to API response
func toWorkLogResponse(workLog *models.TaskWorkLog) WorkLogResponse {
	resp := WorkLogResponse{
		ID:          workLog.ID,
		TaskID:      workLog.TaskID,
		UserID:      workLog.UserID,
		Hours:       workLog.Hours,
		Description: workLog.Description,
		Date:        workLog.Date,
	}
	if workLog.User != nil {
		resp.UserName = workLog.User.FullName
	}
	return resp
}
