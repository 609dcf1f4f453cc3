package handler

import (
	"net/http"

	"project-service/internal/middleware"
	"project-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetOrganization returns the organization resolved for the current
// request, or null when the request carries no tenant context.
func GetOrganization(c echo.Context) error {
	org := middleware.GetOrganizationFromContext(c)
	if org == nil {
		return c.JSON(http.StatusOK, nil)
	}

	logger.FromContext(c).Info("Organization retrieved",
		zap.Uint("organization_id", org.ID),
		zap.String("slug", org.Slug))
	return c.JSON(http.StatusOK, org)
}
