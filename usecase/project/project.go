package project

import (
	"context"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
)

// TaskQuery selects one page of a project's tasks. Empty Status and nil
// AssigneeID disable the respective filter.
type TaskQuery struct {
	ProjectID  int64
	Status     string
	AssigneeID *int64
	Page       int
	PageSize   int
}

type UseCase struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	reports  repository.ReportRepository
}

func New(projects repository.ProjectRepository, tasks repository.TaskRepository, reports repository.ReportRepository) *UseCase {
	return &UseCase{
		projects: projects,
		tasks:    tasks,
		reports:  reports,
	}
}

// List returns every project with its task counts.
func (uc *UseCase) List(ctx context.Context) ([]domain.ProjectSummary, error) {
	health, err := uc.reports.ProjectHealth(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.ProjectSummary, 0, len(health))
	for _, h := range health {
		summaries = append(summaries, h.Summary())
	}
	return summaries, nil
}

// Tasks returns a page of the project's tasks ordered by due date. An unknown
// project is reported before any filter or paging error.
func (uc *UseCase) Tasks(ctx context.Context, q TaskQuery) (domain.Page[domain.Task], error) {
	var empty domain.Page[domain.Task]

	exists, err := uc.projects.Exists(ctx, q.ProjectID)
	if err != nil {
		return empty, err
	}
	if !exists {
		return empty, domain.ErrProjectNotFound
	}

	var status domain.TaskStatus
	if q.Status != "" {
		parsed, err := domain.ParseTaskStatus(q.Status)
		if err != nil {
			return empty, err
		}
		status = parsed
	}

	req, err := domain.NewPageRequest(q.Page, q.PageSize)
	if err != nil {
		return empty, err
	}

	items, total, err := uc.tasks.ListByProject(ctx, repository.TaskFilter{
		ProjectID:  q.ProjectID,
		Status:     status,
		AssigneeID: q.AssigneeID,
		Limit:      req.Limit(),
		Offset:     req.Offset(),
	})
	if err != nil {
		return empty, err
	}
	return domain.NewPage(items, total, req), nil
}
