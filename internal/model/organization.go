package model

import (
	"time"
)

// Organization represents a tenant organization. It is the root of the
// ownership chain and the unit of data isolation.
type Organization struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Name         string    `json:"name" gorm:"type:varchar(200);not null"`
	Slug         string    `json:"slug" gorm:"type:varchar(100);unique;not null"`
	ContactEmail string    `json:"contact_email" gorm:"type:varchar(254)"`
	CreatedAt    time.Time `json:"created_at"`
}
