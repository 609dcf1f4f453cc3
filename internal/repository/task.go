package repository

import (
	"errors"
	"fmt"
	"time"

	"project-service/internal/model"

	"gorm.io/gorm"
)

// TaskCreate holds the fields for creating a task within a project.
// ProjectID and Title are required; the rest fall back to defaults.
type TaskCreate struct {
	ProjectID   uint
	Title       string
	Description string
	Status      string
	Priority    string
	Assignee    string
	DueDate     *time.Time
}

// TaskPatch holds a partial update for a task. Only non-nil fields
// overwrite.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Assignee    *string
	DueDate     *time.Time
}

// GetTask returns the task with the given id if its project belongs to
// org. The ownership check walks the parent chain: task -> project ->
// organization. Tasks outside the tree read as not found.
func (r *Repository) GetTask(org *model.Organization, id uint) (*model.Task, error) {
	if err := r.requireOrg(org); err != nil {
		return nil, err
	}

	var task model.Task
	err := r.db.First(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "Task"}
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	if _, err := r.GetProject(org, task.OwnerID()); err != nil {
		if IsNotFound(err) {
			return nil, &NotFoundError{Entity: "Task"}
		}
		return nil, err
	}
	return &task, nil
}

// ListTasks returns all tasks of a project, newest-created first. The
// project's own ownership is verified first.
func (r *Repository) ListTasks(org *model.Organization, projectID uint) ([]model.Task, error) {
	if _, err := r.GetProject(org, projectID); err != nil {
		return nil, err
	}

	var tasks []model.Task
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask persists a new task under a project of org, applying
// defaults for omitted optional fields.
func (r *Repository) CreateTask(org *model.Organization, req TaskCreate) (*model.Task, error) {
	if _, err := r.GetProject(org, req.ProjectID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}

	task := model.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	}
	if err := r.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// UpdateTask applies a partial update to a task of org. UpdatedAt is
// refreshed on every successful update.
func (r *Repository) UpdateTask(org *model.Organization, id uint, patch TaskPatch) (*model.Task, error) {
	task, err := r.GetTask(org, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Assignee != nil {
		task.Assignee = *patch.Assignee
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	if err := r.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task of org together with all its comments, in
// one transaction. It returns the deleted task's title for
// confirmation messaging.
func (r *Repository) DeleteTask(org *model.Organization, id uint) (string, error) {
	task, err := r.GetTask(org, id)
	if err != nil {
		return "", err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.TaskComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Task{}, task.ID).Error
	})
	if err != nil {
		return "", fmt.Errorf("delete task: %w", err)
	}
	return task.Title, nil
}
