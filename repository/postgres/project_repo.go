package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
)

type projectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *projectRepository) Upsert(ctx context.Context, project *domain.Project) error {
	if project == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO projects (name, client_name, status, start_date, end_date, created_at)
	VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
	ON CONFLICT (name) DO UPDATE
	SET client_name = EXCLUDED.client_name,
		status = EXCLUDED.status,
		start_date = EXCLUDED.start_date,
		end_date = EXCLUDED.end_date
	RETURNING id, created_at;
	`

	if err := r.pool.QueryRow(ctx, query,
		project.Name,
		project.ClientName,
		string(project.Status),
		project.StartDate,
		project.EndDate,
		nullTime(project.CreatedAt),
	).Scan(&project.ID, &project.CreatedAt); err != nil {
		return translateWriteError(err)
	}
	return nil
}
