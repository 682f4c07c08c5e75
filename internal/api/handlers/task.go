package handlers

import (
	"net/http"
	"strconv"
	"time"

	"teamflow-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	taskService service.TaskServiceInterface
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskServiceInterface) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask handles POST /projects/:projectID/tasks
// @Summary Create a task
// @Description Create a task in a project. Admin only. Assignees must be organization members.
// @Tags tasks
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param request body service.CreateTaskRequest true "Task details"
// @Success 201 {object} service.TaskResponse "Task created"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{projectID}/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseUUIDParam(c, "projectID")
	if !ok {
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.taskService.Create(userID, projectID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListTasks handles GET /projects/:projectID/tasks
// @Summary List a project's tasks
// @Description Get all tasks in a project with pagination
// @Tags tasks
// @Produce json
// @Param projectID path string true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(50)
// @Success 200 {object} service.TaskListResponse "Tasks"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{projectID}/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseUUIDParam(c, "projectID")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	resp, err := h.taskService.List(userID, projectID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTask handles GET /tasks/:taskID
// @Summary Get a task
// @Description Get a task with its assignees
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} service.TaskResponse "Task"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "taskID")
	if !ok {
		return
	}

	resp, err := h.taskService.Get(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateTask handles PATCH /tasks/:taskID
// @Summary Update a task
// @Description Update a task. Admins may change anything; an assignee may edit when the task allows member edits.
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskID path string true "Task ID"
// @Param request body service.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} service.TaskResponse "Task updated"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 403 {object} ErrorResponse "Edit not allowed"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "taskID")
	if !ok {
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.taskService.Update(userID, taskID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTask handles DELETE /tasks/:taskID
// @Summary Delete a task
// @Description Delete a task with its comments and work logs. Admin only.
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 204 "Task deleted"
// @Failure 403 {object} ErrorResponse "Admin role required"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "taskID")
	if !ok {
		return
	}

	if err := h.taskService.Delete(userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddComment handles POST /tasks/:taskID/comments
// @Summary Comment on a task
// @Description Add a comment to a task. Any member may comment.
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskID path string true "Task ID"
// @Param request body service.AddCommentRequest true "Comment"
// @Success 201 {object} service.CommentResponse "Comment added"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID}/comments [post]
func (h *TaskHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "taskID")
	if !ok {
		return
	}

	var req service.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.taskService.AddComment(userID, taskID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListComments handles GET /tasks/:taskID/comments
// @Summary List a task's comments
// @Description Get all comments on a task, oldest first
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {array} service.CommentResponse "Comments"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID}/comments [get]
func (h *TaskHandler) ListComments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "taskID")
	if !ok {
		return
	}

	resp, err := h.taskService.ListComments(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddWorkLog handles POST /tasks/:taskID/worklogs
// @Summary Log hours on a task
// @Description Record time spent on a task. Any member may log time.
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskID path string true "Task ID"
// @Param request body service.AddWorkLogRequest true "Work log entry"
// @Success 201 {object} service.WorkLogResponse "Work log added"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID}/worklogs [post]
func (h *TaskHandler) AddWorkLog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "taskID")
	if !ok {
		return
	}

	var req service.AddWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.taskService.AddWorkLog(userID, taskID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListWorkLogs handles GET /tasks/:taskID/worklogs
// @Summary List a task's work logs
// @Description Get all work log entries for a task, newest first
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {array} service.WorkLogResponse "Work logs"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Security BearerAuth
// @Router /tasks/{taskID}/worklogs [get]
func (h *TaskHandler) ListWorkLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseUUIDParam(c, "taskID")
	if !ok {
		return
	}

	resp, err := h.taskService.ListWorkLogs(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// WorkLogSummary handles GET /organizations/:orgID/worklogs/summary
// @Summary Summarize an organization's logged hours
// @Description Total hours logged against the organization's tasks per day over a date range, defaulting to the current week.
// @Tags tasks
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} service.WorkLogSummaryResponse "Work log summary"
// @Failure 400 {object} ErrorResponse "Malformed date"
// @Failure 403 {object} ErrorResponse "Not a member"
// @Security BearerAuth
// @Router /organizations/{orgID}/worklogs/summary [get]
func (h *TaskHandler) WorkLogSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orgID, ok := parseUUIDParam(c, "orgID")
	if !ok {
		return
	}

	var from, to time.Time
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
	}

	resp, err := h.taskService.WorkLogSummary(userID, orgID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
