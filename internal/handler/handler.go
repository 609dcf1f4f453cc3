package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"project-service/internal/repository"
	"project-service/pkg/database"

	"github.com/labstack/echo/v4"
)

// repo returns the scoped repository over the live database handle.
func repo() *repository.Repository {
	return repository.New(database.GetDB())
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// dueDateLayouts are the accepted due_date formats: a bare date or a
// full timestamp.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDueDate parses an optional due_date value. An empty string reads
// as absent.
func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid due_date format")
}

// mutationFailure renders the uniform failure envelope for business
// errors (no tenant context, entity not found). Business failures are
// part of the payload, never transport faults.
func mutationFailure(c echo.Context, entityKey string, err error) error {
	return c.JSON(http.StatusOK, echo.Map{
		entityKey: nil,
		"success": false,
		"message": err.Error(),
	})
}

// isBusinessError reports whether err belongs in the mutation payload
// rather than being a transport-level fault.
func isBusinessError(err error) bool {
	return errors.Is(err, repository.ErrNoOrganization) || repository.IsNotFound(err)
}
