package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
)

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository serves the dashboard aggregates straight from Postgres.
func NewReportRepository(pool *pgxpool.Pool) repository.ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) DeveloperWorkload(ctx context.Context) ([]domain.DeveloperWorkload, error) {
	const query = `
	SELECT d.id,
		d.first_name || ' ' || d.last_name,
		COUNT(t.id) FILTER (WHERE t.status <> 'Completed'),
		COALESCE(AVG(t.estimated_complexity) FILTER (WHERE t.status <> 'Completed'), 0)::float8
	FROM developers d
	LEFT JOIN tasks t ON t.assignee_id = d.id
	WHERE d.is_active
	GROUP BY d.id
	ORDER BY d.id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workload := make([]domain.DeveloperWorkload, 0)
	for rows.Next() {
		var w domain.DeveloperWorkload
		if err := rows.Scan(&w.DeveloperID, &w.DeveloperName, &w.OpenTasksCount, &w.AverageEstimatedComplexity); err != nil {
			return nil, err
		}
		workload = append(workload, w)
	}
	return workload, rows.Err()
}

func (r *reportRepository) ProjectHealth(ctx context.Context) ([]domain.ProjectHealth, error) {
	const query = `
	SELECT p.id, p.name, p.client_name, p.status,
		COUNT(t.id),
		COUNT(t.id) FILTER (WHERE t.status <> 'Completed'),
		COUNT(t.id) FILTER (WHERE t.status = 'Completed')
	FROM projects p
	LEFT JOIN tasks t ON t.project_id = p.id
	GROUP BY p.id
	ORDER BY p.id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	health := make([]domain.ProjectHealth, 0)
	for rows.Next() {
		var (
			h      domain.ProjectHealth
			status string
		)
		if err := rows.Scan(&h.ProjectID, &h.ProjectName, &h.ClientName, &status, &h.TotalTasks, &h.OpenTasks, &h.CompletedTasks); err != nil {
			return nil, err
		}
		h.ProjectStatus = domain.ProjectStatus(status)
		health = append(health, h)
	}
	return health, rows.Err()
}

func (r *reportRepository) DeveloperTaskHistory(ctx context.Context) ([]domain.DeveloperTaskHistory, error) {
	const query = `
	SELECT d.id, d.first_name || ' ' || d.last_name, t.status, t.due_date, t.completion_date
	FROM developers d
	JOIN tasks t ON t.assignee_id = d.id
	WHERE d.is_active
	ORDER BY d.id, t.id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := make([]domain.DeveloperTaskHistory, 0)
	for rows.Next() {
		var (
			devID      int64
			name       string
			status     string
			due        time.Time
			completion *time.Time
		)
		if err := rows.Scan(&devID, &name, &status, &due, &completion); err != nil {
			return nil, err
		}
		if n := len(histories); n == 0 || histories[n-1].DeveloperID != devID {
			histories = append(histories, domain.DeveloperTaskHistory{DeveloperID: devID, DeveloperName: name})
		}
		last := &histories[len(histories)-1]
		last.Tasks = append(last.Tasks, domain.TaskSnapshot{
			Status:         domain.TaskStatus(status),
			DueDate:        due,
			CompletionDate: completion,
		})
	}
	return histories, rows.Err()
}
