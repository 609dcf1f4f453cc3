package model

import (
	"time"
)

// TaskComment represents a comment on a task. Its organization is
// comment.task.project.organization.
type TaskComment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	TaskID    uint      `json:"task_id" gorm:"index;not null;comment:'Task this comment belongs to'"`
	Author    string    `json:"author" gorm:"type:varchar(100);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerID returns the owning task's ID.
func (c *TaskComment) OwnerID() uint {
	return c.TaskID
}
