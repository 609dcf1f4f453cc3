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

// CommentCreateRequest defines the structure for comment creation
// requests; all fields are required
type CommentCreateRequest struct {
	TaskID  uint   `json:"task_id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// CommentUpdateRequest defines the structure for comment updates;
// content is the only mutable field
type CommentUpdateRequest struct {
	Content string `json:"content"`
}

// ListComments returns all comments of a task in chronological order.
func ListComments(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCommentOperation("list")

	taskID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid task ID"})
	}

	org := middleware.GetOrganizationFromContext(c)
	if org == nil {
		return c.JSON(http.StatusOK, []model.TaskComment{})
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	comments, err := repo().ListComments(org, taskID)
	if err != nil {
		if isBusinessError(err) {
			log.Warn("Task not found for comment listing", zap.Uint("task_id", taskID))
			return c.JSON(http.StatusOK, []model.TaskComment{})
		}
		log.Error("Failed to list comments", zap.Uint("task_id", taskID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve comments",
		})
	}

	log.Info("Comments retrieved successfully",
		zap.Uint("task_id", taskID),
		zap.Int("count", len(comments)))
	return c.JSON(http.StatusOK, comments)
}

// AddComment adds a comment to a task of the current organization
func AddComment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCommentOperation("add")

	var req CommentCreateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.TaskID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "task_id is required"})
	}
	if req.Author == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "author is required"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content is required"})
	}

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("insert")(time.Now())

	comment, err := repo().AddComment(org, repository.CommentCreate{
		TaskID:  req.TaskID,
		Author:  req.Author,
		Content: req.Content,
	})
	if err != nil {
		if isBusinessError(err) {
			return mutationFailure(c, "comment", err)
		}
		log.Error("Failed to add comment", zap.Uint("task_id", req.TaskID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to add comment",
		})
	}

	log.Info("Comment added successfully",
		zap.Uint("comment_id", comment.ID),
		zap.Uint("task_id", comment.TaskID),
		zap.String("author", comment.Author))
	return c.JSON(http.StatusOK, echo.Map{
		"comment": comment,
		"success": true,
		"message": "Comment added",
	})
}

// UpdateComment replaces the content of a comment of the current
// organization
func UpdateComment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCommentOperation("update")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid comment ID"})
	}

	var req CommentUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("comment_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content is required"})
	}

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("update")(time.Now())

	comment, err := repo().UpdateComment(org, id, req.Content)
	if err != nil {
		if isBusinessError(err) {
			return mutationFailure(c, "comment", err)
		}
		log.Error("Failed to update comment", zap.Uint("comment_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update comment",
		})
	}

	log.Info("Comment updated successfully", zap.Uint("comment_id", comment.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"comment": comment,
		"success": true,
		"message": "Comment updated",
	})
}

// DeleteComment removes a comment of the current organization
func DeleteComment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCommentOperation("delete")

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid comment ID"})
	}

	org := middleware.GetOrganizationFromContext(c)

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := repo().DeleteComment(org, id); err != nil {
		if isBusinessError(err) {
			return c.JSON(http.StatusOK, echo.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		log.Error("Failed to delete comment", zap.Uint("comment_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete comment",
		})
	}

	log.Info("Comment deleted successfully", zap.Uint("comment_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Comment deleted successfully",
	})
}
