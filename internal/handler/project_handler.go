package handler

import (
	"net/http"
	"time"

	"project-service/internal/middleware"
	"project-service/internal/model"
	"project-service/internal/repository"
	"project-service/pkg/logger"
	"project-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProjectCreateRequest defines the structure for project creation requests
type ProjectCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
}

// ProjectUpdateRequest defines the structure for partial project
// updates; absent fields leave the stored values untouched
type ProjectUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
}

// ListProjects returns all projects of the current organization,
// newest first. Without tenant context the list is empty.
func ListProjects(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("list")

	org := middleware.GetOrganizationFromContext(c)
	if org == nil {
		return c.JSON(http.StatusOK, []model.Project{})
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	projects, err := repo().ListProjects(org)
	if err != nil {
		log.Error("Failed to list projects", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve projects",
		})
	}

	log.Info("Projects retrieved successfully", zap.Int("count", len(projects)))
	return c.JSON(http.StatusOK, projects)
}

// GetProject returns a single project of the current organization, or
// null when it does not exist within the tenant's tree.
func GetProject(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("get")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid project ID"})
	}

	org := middleware.GetOrganizationFromContext(c)
	if org == nil {
		return c.JSON(http.StatusOK, nil)
	}

	project, err := repo().GetProject(org, id)
	if err != nil {
		if isBusinessError(err) {
			log.Warn("Project not found", zap.Uint("project_id", id))
			return c.JSON(http.StatusOK, nil)
		}
		log.Error("Failed to get project", zap.Uint("project_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve project",
		})
	}

	log.Info("Project retrieved successfully",
		zap.Uint("project_id", project.ID),
		zap.String("name", project.Name))
	return c.JSON(http.StatusOK, project)
}

// CreateProject creates a new project for the current organization
func CreateProject(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("create")

	var req ProjectCreateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("insert")(time.Now())

	project, err := repo().CreateProject(org, repository.ProjectCreate{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     dueDate,
	})
	if err != nil {
		if isBusinessError(err) {
			return mutationFailure(c, "project", err)
		}
		log.Error("Failed to create project", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create project",
		})
	}

	log.Info("Project created successfully",
		zap.Uint("project_id", project.ID),
		zap.String("name", project.Name),
		zap.Uint("organization_id", project.OrganizationID))
	return c.JSON(http.StatusOK, echo.Map{
		"project": project,
		"success": true,
		"message": "Project created",
	})
}

// UpdateProject applies a partial update to a project of the current
// organization
func UpdateProject(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid project ID"})
	}

	var req ProjectUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("project_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	patch := repository.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		patch.DueDate = dueDate
	}

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("update")(time.Now())

	project, err := repo().UpdateProject(org, id, patch)
	if err != nil {
		if isBusinessError(err) {
			return mutationFailure(c, "project", err)
		}
		log.Error("Failed to update project", zap.Uint("project_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update project",
		})
	}

	log.Info("Project updated successfully",
		zap.Uint("project_id", project.ID),
		zap.String("name", project.Name))
	return c.JSON(http.StatusOK, echo.Map{
		"project": project,
		"success": true,
		"message": "Project updated",
	})
}

// DeleteProject removes a project of the current organization together
// with all its tasks and comments
func DeleteProject(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProjectOperation("delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid project ID"})
	}

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("delete")(time.Now())

	name, err := repo().DeleteProject(org, id)
	if err != nil {
		if isBusinessError(err) {
			return c.JSON(http.StatusOK, echo.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		log.Error("Failed to delete project", zap.Uint("project_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete project",
		})
	}

	log.Info("Project deleted successfully",
		zap.Uint("project_id", id),
		zap.String("name", name))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Project '" + name + "' deleted successfully",
	})
}
