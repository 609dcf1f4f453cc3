package handler

import (
	"net/http"
	"time"

	"project-service/internal/middleware"
	"project-service/internal/stats"
	"project-service/pkg/logger"
	"project-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func aggregator() *stats.Aggregator {
	return stats.New(repo())
}

// GetProjectStats returns task-completion metrics for one project, or
// null when the project is missing or no tenant context exists.
func GetProjectStats(c echo.Context) error {
	log := logger.FromContext(c)

	projectID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid project ID"})
	}

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("select")(time.Now())

	projectStats, err := aggregator().ProjectStats(org, projectID)
	if err != nil {
		if isBusinessError(err) {
			log.Warn("Project not found for stats", zap.Uint("project_id", projectID))
			return c.JSON(http.StatusOK, nil)
		}
		log.Error("Failed to compute project stats", zap.Uint("project_id", projectID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to compute project stats",
		})
	}
	if projectStats == nil {
		return c.JSON(http.StatusOK, nil)
	}

	log.Info("Project stats computed",
		zap.Uint("project_id", projectID),
		zap.Int("total_tasks", projectStats.TotalTasks),
		zap.Float64("completion_rate", projectStats.CompletionRate))
	return c.JSON(http.StatusOK, projectStats)
}

// GetOrganizationStats returns project and task totals for the current
// organization, or null without tenant context.
func GetOrganizationStats(c echo.Context) error {
	log := logger.FromContext(c)

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("select")(time.Now())

	orgStats, err := aggregator().OrganizationStats(org)
	if err != nil {
		log.Error("Failed to compute organization stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to compute organization stats",
		})
	}
	if orgStats == nil {
		return c.JSON(http.StatusOK, nil)
	}

	log.Info("Organization stats computed",
		zap.Uint("organization_id", org.ID),
		zap.Int("total_projects", orgStats.TotalProjects),
		zap.Int("total_tasks", orgStats.TotalTasks))
	return c.JSON(http.StatusOK, orgStats)
}

// ListAllProjectStats returns per-project stats for every project of
// the current organization, in project listing order.
func ListAllProjectStats(c echo.Context) error {
	log := logger.FromContext(c)

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("select")(time.Now())

	statsList, err := aggregator().AllProjectStats(org)
	if err != nil {
		log.Error("Failed to compute project stats list", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to compute project stats",
		})
	}

	log.Info("Project stats list computed", zap.Int("count", len(statsList)))
	return c.JSON(http.StatusOK, statsList)
}
