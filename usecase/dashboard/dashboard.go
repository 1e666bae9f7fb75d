package dashboard

import (
	"context"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
)

// UseCase serves the dashboard read models.
type UseCase struct {
	reports repository.ReportRepository
}

func New(reports repository.ReportRepository) *UseCase {
	return &UseCase{reports: reports}
}

func (uc *UseCase) DeveloperWorkload(ctx context.Context) ([]domain.DeveloperWorkload, error) {
	return uc.reports.DeveloperWorkload(ctx)
}

func (uc *UseCase) ProjectHealth(ctx context.Context) ([]domain.ProjectHealth, error) {
	return uc.reports.ProjectHealth(ctx)
}

// DelayRisk estimates, per active developer with open work, whether their
// remaining tasks are likely to finish late.
func (uc *UseCase) DelayRisk(ctx context.Context) ([]domain.DelayRisk, error) {
	history, err := uc.reports.DeveloperTaskHistory(ctx)
	if err != nil {
		return nil, err
	}
	return domain.EstimateDelayRisks(history), nil
}
