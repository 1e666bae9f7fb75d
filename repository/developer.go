package repository

import (
	"context"

	"github.com/fastygo/teamtasks/domain"
)

type DeveloperRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Developer, error)
	ListActive(ctx context.Context) ([]domain.Developer, error)
	// Upsert matches on email.
	Upsert(ctx context.Context, developer *domain.Developer) error
}
