package repository

import (
	"context"
	"sync"

	"home-affordability/domain"
)

// ScenarioRepositoryMemory is an in-memory implementation of ScenarioRepository.
type ScenarioRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.Scenario
}

// NewScenarioRepositoryMemory creates a new in-memory scenario repository.
func NewScenarioRepositoryMemory() *ScenarioRepositoryMemory {
	return &ScenarioRepositoryMemory{
		data: []domain.Scenario{},
	}
}

// Save stores the scenario in memory.
func (r *ScenarioRepositoryMemory) Save(_ context.Context, s domain.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, s)
	return nil
}

// Recent returns up to limit scenarios, newest first.
func (r *ScenarioRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.data) {
		limit = len(r.data)
	}

	out := make([]domain.Scenario, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
