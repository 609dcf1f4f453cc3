package repository

import (
	"errors"
)

// ErrNoOrganization is returned by every repository operation invoked
// without a resolved organization. The text is the canonical payload
// message for missing tenant context.
var ErrNoOrganization = errors.New("No organization header")

// NotFoundError indicates an entity id that does not exist or does not
// belong to the acting organization's ownership tree. The two cases are
// deliberately indistinguishable so existence never leaks across
// tenants.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
