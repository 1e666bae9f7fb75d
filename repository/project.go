package repository

import (
	"context"

	"github.com/fastygo/teamtasks/domain"
)

type ProjectRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	// Upsert matches on project name.
	Upsert(ctx context.Context, project *domain.Project) error
}
