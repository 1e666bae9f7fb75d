package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
	"github.com/fastygo/teamtasks/usecase"
)

const (
	defaultStatus     = domain.StatusToDo
	defaultPriority   = domain.PriorityMedium
	defaultComplexity = 3
)

// CreateInput carries a new task as received from the client.
// Nil optional fields fall back to their defaults.
type CreateInput struct {
	ProjectID           int64
	AssigneeID          int64
	Title               string
	Description         *string
	Status              *string
	Priority            *string
	EstimatedComplexity *int
	DueDate             *time.Time
	CompletionDate      *time.Time
}

// StatusInput changes a task's status. Priority and complexity are optional;
// nil or an empty priority leaves the stored value untouched.
type StatusInput struct {
	Status              string
	Priority            *string
	EstimatedComplexity *int
}

type UseCase struct {
	tasks      repository.TaskRepository
	projects   repository.ProjectRepository
	developers repository.DeveloperRepository
	reports    usecase.ReportInvalidator
	logger     *zap.Logger
	now        func() time.Time
}

func New(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	developers repository.DeveloperRepository,
	reports usecase.ReportInvalidator,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:      tasks,
		projects:   projects,
		developers: developers,
		reports:    reports,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *UseCase) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// CreateTask validates input and persists the task. Rules are checked in a
// fixed order and the first failure is returned: title, project, assignee,
// status, priority, complexity, due date.
func (uc *UseCase) CreateTask(ctx context.Context, in CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	task, fieldErr := uc.buildTask(title, in)
	if fieldErr != nil {
		// References rank ahead of field rules, so report a missing
		// project or assignee before the field error.
		if err := uc.checkReferences(ctx, in.ProjectID, in.AssigneeID); err != nil {
			return nil, err
		}
		return nil, fieldErr
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	uc.invalidateReports(ctx, "create", created.ID)
	return created, nil
}

// UpdateStatus applies a status transition under a row lock.
func (uc *UseCase) UpdateStatus(ctx context.Context, id int64, in StatusInput) (*domain.Task, error) {
	updated, err := uc.tasks.Mutate(ctx, id, func(task *domain.Task) error {
		status, err := domain.ParseTaskStatus(in.Status)
		if err != nil {
			return err
		}
		priority := task.Priority
		if in.Priority != nil && *in.Priority != "" {
			if priority, err = domain.ParsePriority(*in.Priority); err != nil {
				return err
			}
		}
		complexity := task.EstimatedComplexity
		if in.EstimatedComplexity != nil {
			if complexity, err = domain.ParseComplexity(*in.EstimatedComplexity); err != nil {
				return err
			}
		}

		task.Priority = priority
		task.EstimatedComplexity = complexity
		task.TransitionTo(status, uc.now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateReports(ctx, "update_status", updated.ID)
	return updated, nil
}

func (uc *UseCase) buildTask(title string, in CreateInput) (*domain.Task, error) {
	status := defaultStatus
	if in.Status != nil {
		parsed, err := domain.ParseTaskStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	priority := defaultPriority
	if in.Priority != nil {
		parsed, err := domain.ParsePriority(*in.Priority)
		if err != nil {
			return nil, err
		}
		priority = parsed
	}

	complexity := defaultComplexity
	if in.EstimatedComplexity != nil {
		parsed, err := domain.ParseComplexity(*in.EstimatedComplexity)
		if err != nil {
			return nil, err
		}
		complexity = parsed
	}

	if in.DueDate == nil || in.DueDate.IsZero() {
		return nil, domain.ErrDueDateRequired
	}

	task := &domain.Task{
		ProjectID:           in.ProjectID,
		AssigneeID:          in.AssigneeID,
		Title:               title,
		Description:         normalizeDescription(in.Description),
		Status:              status,
		Priority:            priority,
		EstimatedComplexity: complexity,
		DueDate:             *in.DueDate,
	}
	if status == domain.StatusCompleted {
		completed := uc.now().UTC()
		if in.CompletionDate != nil && !in.CompletionDate.IsZero() {
			completed = *in.CompletionDate
		}
		task.CompletionDate = &completed
	}
	return task, nil
}

func (uc *UseCase) checkReferences(ctx context.Context, projectID, assigneeID int64) error {
	exists, err := uc.projects.Exists(ctx, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ProjectMissing(projectID)
	}

	developer, err := uc.developers.GetByID(ctx, assigneeID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return domain.AssigneeUnavailable(assigneeID)
		}
		return err
	}
	if !developer.CanTakeAssignments() {
		return domain.AssigneeUnavailable(assigneeID)
	}
	return nil
}

func (uc *UseCase) invalidateReports(ctx context.Context, operation string, taskID int64) {
	if uc.reports == nil {
		return
	}
	if err := uc.reports.Invalidate(ctx); err != nil {
		uc.logger.Warn("failed to invalidate report cache",
			zap.String("operation", operation),
			zap.Int64("task_id", taskID),
			zap.Error(err),
		)
	}
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
