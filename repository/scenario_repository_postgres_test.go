package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-affordability/domain"
)

type fakeRow struct {
	id        uuid.UUID
	payload   []byte
	createdAt time.Time
	err       error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 3 {
		return fmt.Errorf("expected 3 columns, got %d", len(dest))
	}
	*dest[0].(*uuid.UUID) = r.id
	*dest[1].(*[]byte) = r.payload
	*dest[2].(*time.Time) = r.createdAt
	return nil
}

type failingPinger struct {
	calls int
}

func (p *failingPinger) PingContext(context.Context) error {
	p.calls++
	return errors.New("connection refused")
}

func sampleScenario() domain.Scenario {
	s := domain.NewScenario(domain.Calculation{
		Inputs:        domain.AffordabilityInputs{AnnualIncome: 75_000, DownPaymentPercent: 3},
		SelectedPrice: 305_000,
		Result:        domain.AffordabilityResult{MaxHomePrice: 305_000, MonthlyPayment: 2249.5},
		Status:        domain.BudgetStatus{Severity: domain.SeverityWarning, Message: domain.MessageStretchesBudget},
	})
	s.CreatedAt = s.CreatedAt.Truncate(time.Microsecond)
	return s
}

func TestScenarioArgsAndScan_RoundTrip(t *testing.T) {
	s := sampleScenario()

	args, err := scenarioArgs(s)
	require.NoError(t, err)
	require.Len(t, args, 6)
	assert.Equal(t, s.ID, args[0])
	assert.Equal(t, 305_000.0, args[1])
	assert.Equal(t, 305_000.0, args[2])
	assert.Equal(t, "warning", args[3])
	assert.Equal(t, s.CreatedAt, args[5])

	payload, ok := args[4].([]byte)
	require.True(t, ok)
	assert.True(t, json.Valid(payload))

	got, err := scanScenario(fakeRow{id: s.ID, payload: payload, createdAt: s.CreatedAt})
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestScanScenario_Errors(t *testing.T) {
	_, err := scanScenario(fakeRow{err: errors.New("bad row")})
	assert.ErrorContains(t, err, "scan scenario")

	_, err = scanScenario(fakeRow{id: uuid.New(), payload: []byte("{not json")})
	assert.ErrorContains(t, err, "decode scenario")
}

func TestPingWithRetry_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	db := &failingPinger{}

	start := time.Now()
	err := pingWithRetry(ctx, db, 5, time.Hour)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, db.calls)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPingWithRetry_GivesUpAfterAttempts(t *testing.T) {
	db := &failingPinger{}

	err := pingWithRetry(context.Background(), db, 3, time.Millisecond)

	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, 3, db.calls)
}

// Runs against a real server only when TEST_DATABASE_URL is set.
func TestScenarioRepositoryPostgres_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	repo, err := NewScenarioRepositoryPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	empty, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	s := sampleScenario()
	require.NoError(t, repo.Save(ctx, s))
	t.Cleanup(func() {
		_, _ = repo.db.ExecContext(ctx, `DELETE FROM affordability_scenarios WHERE id = $1`, s.ID)
	})

	recent, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, s.ID, recent[0].ID)
	assert.Equal(t, s.Calculation, recent[0].Calculation)
	assert.True(t, s.CreatedAt.Equal(recent[0].CreatedAt))
}
