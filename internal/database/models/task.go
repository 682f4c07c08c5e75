package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the workflow state of a task
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority represents the urgency of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task belongs to a project and is assigned to organization members
type Task struct {
	BaseModel
	OrganizationID  uuid.UUID    `json:"organization_id" gorm:"type:uuid;not null;index"`
	ProjectID       uuid.UUID    `json:"project_id" gorm:"type:uuid;not null;index"`
	Title           string       `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description     string       `json:"description" gorm:"size:1000" validate:"max=1000"`
	Status          TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
	Priority        TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'medium'"`
	DueDate         *time.Time   `json:"due_date,omitempty"`
	AllowMemberEdit bool         `json:"allow_member_edit" gorm:"not null;default:false"`

	// Relationships
	Project   *Project      `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Assignees []User        `json:"assignees,omitempty" gorm:"many2many:task_assignees;"`
	Comments  []TaskComment `json:"comments,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	WorkLogs  []TaskWorkLog `json:"work_logs,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// TaskComment is a member's comment on a task
type TaskComment struct {
	BaseModel
	TaskID  uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Message string    `json:"message" gorm:"not null;size:2000" validate:"required,max=2000"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for TaskComment
func (TaskComment) TableName() string {
	return "task_comments"
}

// TaskWorkLog records hours a member spent on a task
type TaskWorkLog struct {
	BaseModel
	TaskID      uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Hours       float64   `json:"hours" gorm:"not null" validate:"required,gt=0"`
	Description string    `json:"description" gorm:"size:500" validate:"max=500"`
	Date        time.Time `json:"date"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for TaskWorkLog
func (TaskWorkLog) TableName() string {
	return "task_work_logs"
}
