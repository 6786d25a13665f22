package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"home-affordability/domain"
)

// ScenarioRepositoryPostgres persists scenarios to PostgreSQL.
type ScenarioRepositoryPostgres struct {
	db *sql.DB
}

// NewScenarioRepositoryPostgres opens a connection, waits for the server to
// answer and runs the schema migration.
func NewScenarioRepositoryPostgres(ctx context.Context, dsn string) (*ScenarioRepositoryPostgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := pingWithRetry(ctx, db, pingAttempts, time.Second); err != nil {
		_ = db.Close()
		return nil, err
	}

	repo := &ScenarioRepositoryPostgres{db: db}
	if err := repo.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return repo, nil
}

const pingAttempts = 5

type pinger interface {
	PingContext(ctx context.Context) error
}

// pingWithRetry waits for the server to answer, giving up early when ctx ends.
func pingWithRetry(ctx context.Context, db pinger, attempts int, backoff time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres: ping: %w", ctx.Err())
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("postgres: ping failed after retries: %w", err)
}

func (r *ScenarioRepositoryPostgres) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS affordability_scenarios (
			id             UUID PRIMARY KEY,
			max_home_price NUMERIC(12,2) NOT NULL,
			selected_price NUMERIC(12,2) NOT NULL,
			severity       VARCHAR(16)   NOT NULL,
			calculation    JSONB         NOT NULL,
			created_at     TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_affordability_scenarios_created_at
			ON affordability_scenarios(created_at DESC);
	`)
	return err
}

func (r *ScenarioRepositoryPostgres) Save(ctx context.Context, s domain.Scenario) error {
	args, err := scenarioArgs(s)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO affordability_scenarios (id, max_home_price, selected_price, severity, calculation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, args...)
	if err != nil {
		return fmt.Errorf("postgres: insert scenario: %w", err)
	}
	return nil
}

func (r *ScenarioRepositoryPostgres) Recent(ctx context.Context, limit int) ([]domain.Scenario, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, calculation, created_at
		FROM affordability_scenarios
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: recent scenarios: %w", err)
	}
	defer rows.Close()

	scenarios := make([]domain.Scenario, 0, limit)
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scenarioArgs returns the INSERT parameters in column order.
func scenarioArgs(s domain.Scenario) ([]any, error) {
	payload, err := json.Marshal(s.Calculation)
	if err != nil {
		return nil, fmt.Errorf("postgres: encode scenario: %w", err)
	}
	return []any{
		s.ID,
		s.Calculation.Result.MaxHomePrice,
		s.Calculation.SelectedPrice,
		string(s.Calculation.Status.Severity),
		payload,
		s.CreatedAt,
	}, nil
}

// scanScenario reads one (id, calculation, created_at) row.
func scanScenario(row rowScanner) (domain.Scenario, error) {
	var (
		s       domain.Scenario
		payload []byte
	)
	if err := row.Scan(&s.ID, &payload, &s.CreatedAt); err != nil {
		return domain.Scenario{}, fmt.Errorf("postgres: scan scenario: %w", err)
	}
	if err := json.Unmarshal(payload, &s.Calculation); err != nil {
		return domain.Scenario{}, fmt.Errorf("postgres: decode scenario %s: %w", s.ID, err)
	}
	return s, nil
}

func (r *ScenarioRepositoryPostgres) Close() error {
	return r.db.Close()
}
