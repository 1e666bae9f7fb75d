package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
)

const taskColumns = `
	t.id, t.project_id, t.title, t.description, t.assignee_id,
	d.first_name || ' ' || d.last_name,
	t.status, t.priority, t.estimated_complexity, t.due_date, t.completion_date, t.created_at
`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + `
	FROM tasks t
	JOIN developers d ON d.id = t.assignee_id
	WHERE t.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) ListByProject(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, int, error) {
	const countQuery = `
	SELECT COUNT(*)
	FROM tasks t
	WHERE t.project_id = $1
	  AND ($2 = '' OR t.status = $2)
	  AND ($3::bigint IS NULL OR t.assignee_id = $3)
	`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, filter.ProjectID, string(filter.Status), filter.AssigneeID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + taskColumns + `
	FROM tasks t
	JOIN developers d ON d.id = t.assignee_id
	WHERE t.project_id = $1
	  AND ($2 = '' OR t.status = $2)
	  AND ($3::bigint IS NULL OR t.assignee_id = $3)
	ORDER BY t.due_date ASC, t.id ASC
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query, filter.ProjectID, string(filter.Status), filter.AssigneeID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, total, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var projectID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM projects WHERE id = $1 FOR SHARE`, task.ProjectID).Scan(&projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ProjectMissing(task.ProjectID)
		}
		return nil, err
	}

	var (
		firstName, lastName string
		active              bool
	)
	if err := tx.QueryRow(ctx,
		`SELECT first_name, last_name, is_active FROM developers WHERE id = $1 FOR SHARE`,
		task.AssigneeID,
	).Scan(&firstName, &lastName, &active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.AssigneeUnavailable(task.AssigneeID)
		}
		return nil, err
	}
	if !active {
		return nil, domain.AssigneeUnavailable(task.AssigneeID)
	}

	const query = `
	INSERT INTO tasks (project_id, assignee_id, title, description, status, priority,
		estimated_complexity, due_date, completion_date, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, NOW()))
	RETURNING id, created_at
	`
	if err := tx.QueryRow(ctx, query,
		task.ProjectID,
		task.AssigneeID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.EstimatedComplexity,
		task.DueDate,
		task.CompletionDate,
		nullTime(task.CreatedAt),
	).Scan(&task.ID, &task.CreatedAt); err != nil {
		return nil, translateWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translateWriteError(err)
	}

	task.AssigneeName = (&domain.Developer{FirstName: firstName, LastName: lastName}).FullName()
	return task, nil
}

func (r *taskRepository) Mutate(ctx context.Context, id int64, fn repository.MutateFunc) (*domain.Task, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + taskColumns + `
	FROM tasks t
	JOIN developers d ON d.id = t.assignee_id
	WHERE t.id = $1
	FOR UPDATE OF t
	`
	task, err := scanTask(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := fn(task); err != nil {
		return nil, err
	}

	const update = `
	UPDATE tasks
	SET status = $2,
		priority = $3,
		estimated_complexity = $4,
		completion_date = $5
	WHERE id = $1
	`
	tag, err := tx.Exec(ctx, update,
		task.ID,
		string(task.Status),
		string(task.Priority),
		task.EstimatedComplexity,
		task.CompletionDate,
	)
	if err != nil {
		return nil, translateWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTaskNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translateWriteError(err)
	}
	return task, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var (
		status, priority string
		completion       *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.AssigneeID,
		&task.AssigneeName,
		&status,
		&priority,
		&task.EstimatedComplexity,
		&task.DueDate,
		&completion,
		&task.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.Priority(priority)
	task.CompletionDate = completion
	return &task, nil
}
