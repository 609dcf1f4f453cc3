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

// TaskCreateRequest defines the structure for task creation requests
type TaskCreateRequest struct {
	ProjectID   uint   `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date"`
}

// TaskUpdateRequest defines the structure for partial task updates;
// absent fields leave the stored values untouched
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Assignee    *string `json:"assignee"`
	DueDate     *string `json:"due_date"`
}

// ListTasks returns all tasks of a project, newest first. The
// project's ownership is verified before any task is read.
func ListTasks(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("list")

	projectID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid project ID"})
	}

	org := middleware.GetOrganizationFromContext(c)
	if org == nil {
		return c.JSON(http.StatusOK, []model.Task{})
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	tasks, err := repo().ListTasks(org, projectID)
	if err != nil {
		if isBusinessError(err) {
			log.Warn("Project not found for task listing", zap.Uint("project_id", projectID))
			return c.JSON(http.StatusOK, []model.Task{})
		}
		log.Error("Failed to list tasks", zap.Uint("project_id", projectID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve tasks",
		})
	}

	log.Info("Tasks retrieved successfully",
		zap.Uint("project_id", projectID),
		zap.Int("count", len(tasks)))
	return c.JSON(http.StatusOK, tasks)
}

// GetTask returns a single task of the current organization, or null
// when it does not exist within the tenant's tree.
func GetTask(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("get")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid task ID"})
	}

	org := middleware.GetOrganizationFromContext(c)
	if org == nil {
		return c.JSON(http.StatusOK, nil)
	}

	task, err := repo().GetTask(org, id)
	if err != nil {
		if isBusinessError(err) {
			log.Warn("Task not found", zap.Uint("task_id", id))
			return c.JSON(http.StatusOK, nil)
		}
		log.Error("Failed to get task", zap.Uint("task_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve task",
		})
	}

	log.Info("Task retrieved successfully",
		zap.Uint("task_id", task.ID),
		zap.String("title", task.Title))
	return c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task under a project of the current
// organization
func CreateTask(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("create")

	var req TaskCreateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ProjectID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id is required"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("insert")(time.Now())

	task, err := repo().CreateTask(org, repository.TaskCreate{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		DueDate:     dueDate,
	})
	if err != nil {
		if isBusinessError(err) {
			return mutationFailure(c, "task", err)
		}
		log.Error("Failed to create task",
			zap.Uint("project_id", req.ProjectID),
			zap.String("title", req.Title),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create task",
		})
	}

	log.Info("Task created successfully",
		zap.Uint("task_id", task.ID),
		zap.Uint("project_id", task.ProjectID),
		zap.String("title", task.Title))
	return c.JSON(http.StatusOK, echo.Map{
		"task":    task,
		"success": true,
		"message": "Task created",
	})
}

// UpdateTask applies a partial update to a task of the current
// organization
func UpdateTask(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid task ID"})
	}

	var req TaskUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("task_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	patch := repository.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
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

	task, err := repo().UpdateTask(org, id, patch)
	if err != nil {
		if isBusinessError(err) {
			return mutationFailure(c, "task", err)
		}
		log.Error("Failed to update task", zap.Uint("task_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update task",
		})
	}

	log.Info("Task updated successfully",
		zap.Uint("task_id", task.ID),
		zap.String("title", task.Title),
		zap.String("status", task.Status))
	return c.JSON(http.StatusOK, echo.Map{
		"task":    task,
		"success": true,
		"message": "Task updated",
	})
}

// DeleteTask removes a task of the current organization together with
// all its comments
func DeleteTask(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTaskOperation("delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid task ID"})
	}

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("delete")(time.Now())

	title, err := repo().DeleteTask(org, id)
	if err != nil {
		if isBusinessError(err) {
			return c.JSON(http.StatusOK, echo.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		log.Error("Failed to delete task", zap.Uint("task_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete task",
		})
	}

	log.Info("Task deleted successfully",
		zap.Uint("task_id", id),
		zap.String("title", title))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Task '" + title + "' deleted successfully",
	})
}
