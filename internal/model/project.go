package model

import (
	"time"
)

// Project statuses
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Project represents a project owned by exactly one organization for
// its whole lifetime.
type Project struct {
	ID             uint       `json:"id" gorm:"primarykey"`
	OrganizationID uint       `json:"organization_id" gorm:"index;not null;comment:'Organization this project belongs to'"`
	Name           string     `json:"name" gorm:"type:varchar(200);not null"`
	Description    string     `json:"description" gorm:"type:text"`
	Status         string     `json:"status" gorm:"type:varchar(20);default:'planning'"`
	DueDate        *time.Time `json:"due_date"`
	CreatedAt      time.Time  `json:"created_at"`
}

// OwnerID returns the owning organization's ID. Together with
// Task.OwnerID and TaskComment.OwnerID this is the small interface the
// repository uses to walk the ownership chain.
func (p *Project) OwnerID() uint {
	return p.OrganizationID
}
