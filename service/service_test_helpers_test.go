package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"home-affordability/config"
	"home-affordability/domain"
	"home-affordability/observability"
	"home-affordability/repository"
)

type MockScenarioRepository struct {
	Saved      []domain.Scenario
	ForceError bool
}

func (m *MockScenarioRepository) Save(_ context.Context, s domain.Scenario) error {
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, s)
	return nil
}

func (m *MockScenarioRepository) Recent(_ context.Context, limit int) ([]domain.Scenario, error) {
	if m.ForceError {
		return nil, errors.New("load error")
	}
	if limit > len(m.Saved) {
		limit = len(m.Saved)
	}
	return m.Saved[:limit], nil
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool) {
	return "", false
}

func (failingCache) Set(context.Context, string, string) error {
	return errors.New("cache down")
}

var testDefaults = config.EngineDefaults{
	PropertyTaxRate: 1.0,
	InsuranceRate:   2.0,
	PMIRate:         0.3,
	DTIFrontEndMax:  36,
	DTIBackEndMax:   43,
	LoanTermYears:   30,
}

func newTestService(repo repository.ScenarioRepository, cache repository.CacheRepository) *AffordabilityService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAffordabilityService(repo, cache, testDefaults, observability.NewMetrics(), logger)
}

func referenceInputs() domain.AffordabilityInputs {
	return domain.AffordabilityInputs{
		AnnualIncome:       75_000,
		MonthlyDebts:       300,
		DownPaymentPercent: 3,
		InterestRate:       6.5,
		LoanTermYears:      30,
	}
}
