package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
)

type developerRepository struct {
	pool *pgxpool.Pool
}

// NewDeveloperRepository instantiates a Postgres-backed developer repository.
func NewDeveloperRepository(pool *pgxpool.Pool) repository.DeveloperRepository {
	return &developerRepository{pool: pool}
}

func (r *developerRepository) GetByID(ctx context.Context, id int64) (*domain.Developer, error) {
	const query = `
		SELECT id, first_name, last_name, email, is_active, created_at
		FROM developers
		WHERE id = $1
	`
	var dev domain.Developer
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&dev.ID, &dev.FirstName, &dev.LastName, &dev.Email, &dev.IsActive, &dev.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDeveloperNotFound
		}
		return nil, err
	}
	return &dev, nil
}

func (r *developerRepository) ListActive(ctx context.Context) ([]domain.Developer, error) {
	const query = `
		SELECT id, first_name, last_name, email, is_active, created_at
		FROM developers
		WHERE is_active
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	developers := make([]domain.Developer, 0)
	for rows.Next() {
		var dev domain.Developer
		if err := rows.Scan(&dev.ID, &dev.FirstName, &dev.LastName, &dev.Email, &dev.IsActive, &dev.CreatedAt); err != nil {
			return nil, err
		}
		developers = append(developers, dev)
	}
	return developers, rows.Err()
}

func (r *developerRepository) Upsert(ctx context.Context, dev *domain.Developer) error {
	if dev == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO developers (first_name, last_name, email, is_active, created_at)
	VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
	ON CONFLICT (email) DO UPDATE
	SET first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		is_active = EXCLUDED.is_active
	RETURNING id, created_at;
	`

	if err := r.pool.QueryRow(ctx, query,
		dev.FirstName,
		dev.LastName,
		dev.Email,
		dev.IsActive,
		nullTime(dev.CreatedAt),
	).Scan(&dev.ID, &dev.CreatedAt); err != nil {
		return translateWriteError(err)
	}
	return nil
}
