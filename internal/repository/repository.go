package repository

import (
	"project-service/internal/model"

	"gorm.io/gorm"
)

// Repository mediates all entity access for a resolved organization.
// Every operation takes the organization as an explicit parameter and
// guarantees that no entity outside its ownership tree is ever
// returned or mutated. Ownership of tasks and comments is checked by
// walking the parent chain up to the organization, not by trusting the
// caller.
type Repository struct {
	db *gorm.DB
}

// New creates a Repository over the given database handle.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// requireOrg short-circuits operations that run without tenant context
// before any storage access happens.
func (r *Repository) requireOrg(org *model.Organization) error {
	if org == nil {
		return ErrNoOrganization
	}
	return nil
}
