package middleware

import (
	"errors"
	"net/http"

	"project-service/internal/model"
	"project-service/internal/tenant"
	"project-service/pkg/database"
	"project-service/pkg/logger"
	"project-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrganizationHeader is the request header carrying the tenant
// identifier (slug or name).
const OrganizationHeader = "X-Organization"

// organizationContextKey is the echo context key for the resolved
// organization.
const organizationContextKey = "organization"

// OrganizationMiddleware resolves the X-Organization header into an
// organization and stores it in the request context. A missing header
// leaves the request without tenant context; downstream handlers treat
// that as unauthorized for tenant data. Resolution failures are
// answered at the transport boundary.
func OrganizationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		identifier := c.Request().Header.Get(OrganizationHeader)
		if identifier == "" {
			prometheus.TenantContextMissingCounter.Inc()
			return next(c)
		}

		org, err := tenant.Resolve(database.GetDB(), identifier)
		if err != nil {
			var nf *tenant.NotFoundError
			if errors.As(err, &nf) {
				log.Warn("Organization not found", zap.String("identifier", identifier))
				prometheus.RecordTenantResolution("not_found")
				return c.JSON(http.StatusNotFound, echo.Map{
					"error":   "Organization not found",
					"message": "No organization found with identifier: " + identifier,
				})
			}
			var amb *tenant.AmbiguousError
			if errors.As(err, &amb) {
				log.Warn("Ambiguous organization identifier", zap.String("identifier", identifier))
				prometheus.RecordTenantResolution("ambiguous")
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error":   "Multiple organizations found",
					"message": "Multiple organizations found with identifier: " + identifier,
				})
			}
			log.Error("Organization resolution failed",
				zap.String("identifier", identifier),
				zap.Error(err))
			prometheus.RecordTenantResolution("error")
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to resolve organization",
			})
		}

		prometheus.RecordTenantResolution("ok")
		c.Set(organizationContextKey, org)

		// Expose the resolved tenant for downstream debugging
		c.Response().Header().Set("X-Current-Organization", org.Slug)

		log.Info("Request resolved to organization",
			zap.Uint("organization_id", org.ID),
			zap.String("organization_slug", org.Slug))

		return next(c)
	}
}

// GetOrganizationFromContext retrieves the resolved organization from
// the context. It returns nil when the request carried no tenant
// context.
func GetOrganizationFromContext(c echo.Context) *model.Organization {
	org, ok := c.Get(organizationContextKey).(*model.Organization)
	if !ok {
		return nil
	}
	return org
}
