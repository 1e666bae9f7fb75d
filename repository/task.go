package repository

import (
	"context"

	"github.com/fastygo/teamtasks/domain"
)

// TaskFilter narrows a project's task listing. Zero values mean "any".
type TaskFilter struct {
	ProjectID  int64
	Status     domain.TaskStatus
	AssigneeID *int64
	Limit      int
	Offset     int
}

// MutateFunc edits a locked task in place. Returning an error aborts the write.
type MutateFunc func(task *domain.Task) error

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	// ListByProject returns one page of tasks and the total number of matches.
	ListByProject(ctx context.Context, filter TaskFilter) ([]domain.Task, int, error)
	// Create re-checks the project and an active assignee inside the insert transaction.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Mutate(ctx context.Context, id int64, fn MutateFunc) (*domain.Task, error)
}
