package developer

import (
	"context"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
)

type UseCase struct {
	developers repository.DeveloperRepository
}

func New(developers repository.DeveloperRepository) *UseCase {
	return &UseCase{developers: developers}
}

// ListActive returns developers that can take assignments, ordered by id.
func (uc *UseCase) ListActive(ctx context.Context) ([]domain.Developer, error) {
	developers, err := uc.developers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if developers == nil {
		developers = []domain.Developer{}
	}
	return developers, nil
}
