package tenant

import (
	"errors"
	"fmt"

	"project-service/internal/model"

	"gorm.io/gorm"
)

// NotFoundError indicates the identifier matched no organization by
// slug or name.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no organization found with identifier: %s", e.Identifier)
}

// AmbiguousError indicates the identifier matched more than one
// organization by name. Slugs are unique, so only the name fallback can
// be ambiguous.
type AmbiguousError struct {
	Identifier string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple organizations found with identifier: %s", e.Identifier)
}

// Resolve maps an inbound identifier to exactly one organization.
// An empty identifier yields no tenant context (nil organization, nil
// error); the caller must treat subsequent tenant-data operations as
// unauthorized. Otherwise the lookup tries an exact slug match first
// and falls back to an exact name match.
func Resolve(db *gorm.DB, identifier string) (*model.Organization, error) {
	if identifier == "" {
		return nil, nil
	}

	var org model.Organization
	err := db.Where("slug = ?", identifier).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("organization lookup by slug: %w", err)
	}

	// Not found by slug, fall back to name. Names are not unique, so
	// fetch two rows to detect ambiguity.
	var orgs []model.Organization
	if err := db.Where("name = ?", identifier).Order("id").Limit(2).Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("organization lookup by name: %w", err)
	}

	switch len(orgs) {
	case 0:
		return nil, &NotFoundError{Identifier: identifier}
	case 1:
		return &orgs[0], nil
	default:
		return nil, &AmbiguousError{Identifier: identifier}
	}
}
