package model

import (
	"time"
)

// Task statuses
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task priorities
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// Task represents a task within a project. Its organization is defined
// transitively as task.project.organization.
type Task struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	ProjectID   uint       `json:"project_id" gorm:"index;not null;comment:'Project this task belongs to'"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'todo'"`
	Priority    string     `json:"priority" gorm:"type:varchar(10);default:'medium'"`
	Assignee    string     `json:"assignee" gorm:"type:varchar(100)"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// OwnerID returns the owning project's ID.
func (t *Task) OwnerID() uint {
	return t.ProjectID
}
