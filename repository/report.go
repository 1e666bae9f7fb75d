package repository

import (
	"context"

	"github.com/fastygo/teamtasks/domain"
)

// ReportRepository runs the aggregate read models behind the dashboards.
type ReportRepository interface {
	DeveloperWorkload(ctx context.Context) ([]domain.DeveloperWorkload, error)
	ProjectHealth(ctx context.Context) ([]domain.ProjectHealth, error)
	DeveloperTaskHistory(ctx context.Context) ([]domain.DeveloperTaskHistory, error)
}
