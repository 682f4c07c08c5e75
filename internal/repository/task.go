package repository

import (
	"time"

	"teamflow-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks, comments and work logs
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a task and its initial assignee associations in one transaction
func (r *TaskRepository) Create(task *models.Task, assigneeIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return replaceAssignees(tx, task, assigneeIDs)
	})
}

// GetByID retrieves a task with its assignees
func (r *TaskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Preload("Assignees").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByProjectID retrieves all tasks for a project with pagination
func (r *TaskRepository) GetByProjectID(projectID uuid.UUID, limit, offset int) ([]models.Task, int64, error) {
	var tasks []models.Task
	var total int64

	query := r.db.Model(&models.Task{}).Where("project_id = ?", projectID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Assignees").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// ReplaceAssignees replaces the task's assignee set
func (r *TaskRepository) ReplaceAssignees(taskID uuid.UUID, assigneeIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
			return err
		}
		return replaceAssignees(tx, &task, assigneeIDs)
	})
}

// IsAssigned reports whether a user is assigned to a task
func (r *TaskRepository) IsAssigned(taskID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Table("task_assignees").
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error
	return count > 0, err
}

// Delete deletes a task
func (r *TaskRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

// AddComment creates a comment on a task
func (r *TaskRepository) AddComment(comment *models.TaskComment) error {
	return r.db.Create(comment).Error
}

// GetComments retrieves all comments on a task, oldest first
func (r *TaskRepository) GetComments(taskID uuid.UUID) ([]models.TaskComment, error) {
	var comments []models.TaskComment
	err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// AddWorkLog records hours against a task
func (r *TaskRepository) AddWorkLog(workLog *models.TaskWorkLog) error {
	return r.db.Create(workLog).Error
}

// GetWorkLogs retrieves all work logs for a task, newest first
func (r *TaskRepository) GetWorkLogs(taskID uuid.UUID) ([]models.TaskWorkLog, error) {
	var workLogs []models.TaskWorkLog
	err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("date DESC").
		Find(&workLogs).Error
	if err != nil {
		return nil, err
	}
	return workLogs, nil
}

// WorkLogDailyTotal is one day's logged hours across an organization's tasks
type WorkLogDailyTotal struct {
	Day   time.Time
	Hours float64
}

// SummarizeWorkLogs totals the hours logged against an organization's tasks
// between from and to (both taken as whole days, to inclusive), grouped by day.
func (r *TaskRepository) SummarizeWorkLogs(orgID uuid.UUID, from, to time.Time) ([]WorkLogDailyTotal, error) {
	var totals []WorkLogDailyTotal
	err := r.db.Model(&models.TaskWorkLog{}).
		Select("date_trunc('day', task_work_logs.date) AS day, SUM(task_work_logs.hours) AS hours").
		Joins("JOIN tasks ON tasks.id = task_work_logs.task_id").
		Where("tasks.organization_id = ? AND task_work_logs.date >= ? AND task_work_logs.date < ?",
			orgID, from, to.AddDate(0, 0, 1)).
		Group("day").
		Order("day").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func replaceAssignees(tx *gorm.DB, task *models.Task, assigneeIDs []uuid.UUID) error {
	if assigneeIDs == nil {
		return nil
	}
	users := make([]models.User, len(assigneeIDs))
	for i, id := range assigneeIDs {
		users[i] = models.User{BaseModel: models.BaseModel{ID: id}}
	}
	return tx.Model(task).Association("Assignees").Replace(users)
}
