package repository

import (
	"errors"
	"fmt"

	"project-service/internal/model"

	"gorm.io/gorm"
)

// CommentCreate holds the fields for adding a comment to a task. All
// fields are required.
type CommentCreate struct {
	TaskID  uint
	Author  string
	Content string
}

// GetComment returns the comment with the given id if its task's
// project belongs to org. The ownership check walks comment -> task ->
// project -> organization.
func (r *Repository) GetComment(org *model.Organization, id uint) (*model.TaskComment, error) {
	if err := r.requireOrg(org); err != nil {
		return nil, err
	}

	var comment model.TaskComment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "Comment"}
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}

	if _, err := r.GetTask(org, comment.OwnerID()); err != nil {
		if IsNotFound(err) {
			return nil, &NotFoundError{Entity: "Comment"}
		}
		return nil, err
	}
	return &comment, nil
}

// ListComments returns all comments of a task in chronological order
// (oldest first). The task's own ownership is verified first.
func (r *Repository) ListComments(org *model.Organization, taskID uint) ([]model.TaskComment, error) {
	if _, err := r.GetTask(org, taskID); err != nil {
		return nil, err
	}

	var comments []model.TaskComment
	err := r.db.Where("task_id = ?", taskID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// AddComment persists a new comment under a task of org.
func (r *Repository) AddComment(org *model.Organization, req CommentCreate) (*model.TaskComment, error) {
	if _, err := r.GetTask(org, req.TaskID); err != nil {
		return nil, err
	}

	comment := model.TaskComment{
		TaskID:  req.TaskID,
		Author:  req.Author,
		Content: req.Content,
	}
	if err := r.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return &comment, nil
}

// UpdateComment replaces the content of a comment of org. Content is
// the only mutable field.
func (r *Repository) UpdateComment(org *model.Organization, id uint, content string) (*model.TaskComment, error) {
	comment, err := r.GetComment(org, id)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := r.db.Save(comment).Error; err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment of org.
func (r *Repository) DeleteComment(org *model.Organization, id uint) error {
	comment, err := r.GetComment(org, id)
	if err != nil {
		return err
	}

	if err := r.db.Delete(&model.TaskComment{}, comment.ID).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
