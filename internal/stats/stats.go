package stats

import (
	"errors"

	"project-service/internal/model"
	"project-service/internal/repository"
)

// ProjectStats summarizes task completion for a single project.
type ProjectStats struct {
	ProjectID       uint    `json:"project_id"`
	ProjectName     string  `json:"project_name"`
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	TodoTasks       int     `json:"todo_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
}

// OrganizationStats summarizes project and task completion across a
// whole organization.
type OrganizationStats struct {
	TotalProjects         int     `json:"total_projects"`
	ActiveProjects        int     `json:"active_projects"`
	CompletedProjects     int     `json:"completed_projects"`
	TotalTasks            int     `json:"total_tasks"`
	CompletedTasks        int     `json:"completed_tasks"`
	OverallCompletionRate float64 `json:"overall_completion_rate"`
}

// Aggregator computes completion metrics by listing entities through
// the scoped repository and reducing in memory, so every figure is
// tenant-scoped by construction.
type Aggregator struct {
	repo *repository.Repository
}

// New creates an Aggregator over the given repository.
func New(repo *repository.Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// ProjectStats computes task counts and the completion rate for one
// project. A missing tenant context yields an absent result, never an
// error; a missing or foreign project propagates as not found.
func (a *Aggregator) ProjectStats(org *model.Organization, projectID uint) (*ProjectStats, error) {
	if org == nil {
		return nil, nil
	}

	project, err := a.repo.GetProject(org, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := a.repo.ListTasks(org, projectID)
	if err != nil {
		return nil, err
	}
	return reduceTasks(project, tasks), nil
}

// OrganizationStats computes project and task totals across org, with
// the same zero-total convention for the overall completion rate.
func (a *Aggregator) OrganizationStats(org *model.Organization) (*OrganizationStats, error) {
	if org == nil {
		return nil, nil
	}

	projects, err := a.repo.ListProjects(org)
	if err != nil {
		return nil, err
	}

	s := &OrganizationStats{TotalProjects: len(projects)}
	for i := range projects {
		switch projects[i].Status {
		case model.ProjectStatusActive:
			s.ActiveProjects++
		case model.ProjectStatusCompleted:
			s.CompletedProjects++
		}

		tasks, err := a.repo.ListTasks(org, projects[i].ID)
		if err != nil {
			return nil, err
		}
		s.TotalTasks += len(tasks)
		for j := range tasks {
			if tasks[j].Status == model.TaskStatusDone {
				s.CompletedTasks++
			}
		}
	}

	s.OverallCompletionRate = completionRate(s.CompletedTasks, s.TotalTasks)
	return s, nil
}

// AllProjectStats computes per-project stats for every project of org,
// in project listing order.
func (a *Aggregator) AllProjectStats(org *model.Organization) ([]ProjectStats, error) {
	if org == nil {
		return []ProjectStats{}, nil
	}

	projects, err := a.repo.ListProjects(org)
	if err != nil {
		return nil, err
	}

	statsList := make([]ProjectStats, 0, len(projects))
	for i := range projects {
		tasks, err := a.repo.ListTasks(org, projects[i].ID)
		if err != nil {
			// A project deleted between the two listings reads as not
			// found; skip it rather than failing the whole report.
			var nf *repository.NotFoundError
			if errors.As(err, &nf) {
				continue
			}
			return nil, err
		}
		statsList = append(statsList, *reduceTasks(&projects[i], tasks))
	}
	return statsList, nil
}

func reduceTasks(project *model.Project, tasks []model.Task) *ProjectStats {
	s := &ProjectStats{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		TotalTasks:  len(tasks),
	}
	for i := range tasks {
		switch tasks[i].Status {
		case model.TaskStatusDone:
			s.CompletedTasks++
		case model.TaskStatusInProgress:
			s.InProgressTasks++
		case model.TaskStatusTodo:
			s.TodoTasks++
		}
	}
	s.CompletionRate = completionRate(s.CompletedTasks, s.TotalTasks)
	return s
}

// completionRate is completed/total, with 0 for an empty scope. The
// zero convention is a policy choice, not an error.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}
