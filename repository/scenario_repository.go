package repository

import (
	"context"

	"home-affordability/domain"
)

// ScenarioRepository keeps a history of calculations.
type ScenarioRepository interface {
	Save(ctx context.Context, s domain.Scenario) error
	Recent(ctx context.Context, limit int) ([]domain.Scenario, error)
}
