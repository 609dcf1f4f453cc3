package repository

import (
	"errors"
	"fmt"
	"time"

	"project-service/internal/model"

	"gorm.io/gorm"
)

// ProjectCreate holds the fields for creating a project. Name is
// required; the rest fall back to their defaults when empty.
type ProjectCreate struct {
	Name        string
	Description string
	Status      string
	DueDate     *time.Time
}

// ProjectPatch holds a partial update for a project. Only non-nil
// fields overwrite; a present empty string still overwrites.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// GetProject returns the project with the given id if it belongs to
// org. A project owned by another organization is indistinguishable
// from a missing one.
func (r *Repository) GetProject(org *model.Organization, id uint) (*model.Project, error) {
	if err := r.requireOrg(org); err != nil {
		return nil, err
	}

	var project model.Project
	err := r.db.First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "Project"}
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if project.OwnerID() != org.ID {
		return nil, &NotFoundError{Entity: "Project"}
	}
	return &project, nil
}

// ListProjects returns all projects of org, newest-created first.
func (r *Repository) ListProjects(org *model.Organization) ([]model.Project, error) {
	if err := r.requireOrg(org); err != nil {
		return nil, err
	}

	var projects []model.Project
	err := r.db.Where("organization_id = ?", org.ID).
		Order("created_at DESC, id DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject persists a new project owned by org, applying defaults
// for omitted optional fields.
func (r *Repository) CreateProject(org *model.Organization, req ProjectCreate) (*model.Project, error) {
	if err := r.requireOrg(org); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.ProjectStatusPlanning
	}

	project := model.Project{
		OrganizationID: org.ID,
		Name:           req.Name,
		Description:    req.Description,
		Status:         status,
		DueDate:        req.DueDate,
	}
	if err := r.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// UpdateProject applies a partial update to a project of org. Fields
// absent from the patch are left unchanged.
func (r *Repository) UpdateProject(org *model.Organization, id uint, patch ProjectPatch) (*model.Project, error) {
	project, err := r.GetProject(org, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}
	if patch.DueDate != nil {
		project.DueDate = patch.DueDate
	}

	if err := r.db.Save(project).Error; err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project of org together with all its tasks
// and their comments, in one transaction. It returns the deleted
// project's name for confirmation messaging.
func (r *Repository) DeleteProject(org *model.Organization, id uint) (string, error) {
	project, err := r.GetProject(org, id)
	if err != nil {
		return "", err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&model.Task{}).Where("project_id = ?", project.ID).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&model.TaskComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", project.ID).Delete(&model.Task{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Project{}, project.ID).Error
	})
	if err != nil {
		return "", fmt.Errorf("delete project: %w", err)
	}
	return project.Name, nil
}
