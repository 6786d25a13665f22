package service

import (
	"context"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-affordability/domain"
	"home-affordability/repository"
)

func TestCalculate_ReferenceBorrower(t *testing.T) {
	repo := &MockScenarioRepository{}
	svc := newTestService(repo, repository.NewMemoryCache(0))

	calc, err := svc.Calculate(context.Background(), referenceInputs())
	require.NoError(t, err)

	r := calc.Result
	assert.GreaterOrEqual(t, r.MaxHomePrice, 300_000.0)
	assert.Less(t, r.MaxHomePrice, 320_000.0)
	assert.Equal(t, r.MaxHomePrice, calc.SelectedPrice)
	assert.LessOrEqual(t, r.FrontEndDTI, 36.0)
	assert.LessOrEqual(t, r.BackEndDTI, 43.0)
	assert.InDelta(t, r.PrincipalAndInterest+r.PropertyTaxes+r.Insurance+r.PMI+r.HOAFees, r.MonthlyPayment, 0.05)

	// Defaults were applied and the amount follows the solved price.
	assert.Equal(t, 1.0, calc.Inputs.PropertyTaxRate)
	assert.Equal(t, domain.BasisPercent, calc.Inputs.DownPaymentBasis)
	assert.InDelta(t, r.MaxHomePrice*0.03, calc.Inputs.DownPaymentAmount, 0.01)

	// At exactly 36% front end the display policy reads it as a stretch.
	assert.Equal(t, domain.SeverityWarning, calc.Status.Severity)
	assert.NotEmpty(t, calc.Breakdown)
	require.Len(t, repo.Saved, 1)
}

func TestCalculate_CachesResult(t *testing.T) {
	repo := &MockScenarioRepository{}
	svc := newTestService(repo, repository.NewMemoryCache(0))
	ctx := context.Background()

	first, err := svc.Calculate(ctx, referenceInputs())
	require.NoError(t, err)
	second, err := svc.Calculate(ctx, referenceInputs())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, repo.Saved, 1, "cache hit should not save again")
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.metrics.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.metrics.Calculations.WithLabelValues("calculate")))
}

func TestCalculate_NonCriticalFailures(t *testing.T) {
	repo := &MockScenarioRepository{ForceError: true}
	svc := newTestService(repo, failingCache{})

	calc, err := svc.Calculate(context.Background(), referenceInputs())

	require.NoError(t, err)
	assert.Positive(t, calc.Result.MaxHomePrice)
}

func TestCalculate_Unaffordable(t *testing.T) {
	svc := newTestService(&MockScenarioRepository{}, repository.NewMemoryCache(0))
	in := referenceInputs()
	in.MonthlyDebts = 4000
	in.HOAMonthlyFee = 250

	calc, err := svc.Calculate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, domain.AffordabilityResult{HOAFees: 250}, calc.Result)
	assert.Equal(t, domain.SeverityUnknown, calc.Status.Severity)
	assert.Zero(t, calc.Inputs.DownPaymentAmount)
}

func TestCalculate_AmountBasis(t *testing.T) {
	svc := newTestService(&MockScenarioRepository{}, repository.NewMemoryCache(0))
	in := referenceInputs()
	in.DownPaymentBasis = domain.BasisAmount
	in.DownPaymentAmount = 60_000
	in.DownPaymentPercent = 0

	calc, err := svc.Calculate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 60_000.0, calc.Inputs.DownPaymentAmount)
	implied := 60_000 / calc.Result.MaxHomePrice * 100
	assert.InDelta(t, implied, calc.Inputs.DownPaymentPercent, 0.05)

	baseline, err := svc.Calculate(context.Background(), referenceInputs())
	require.NoError(t, err)
	assert.Greater(t, calc.Result.MaxHomePrice, baseline.Result.MaxHomePrice)
}

func TestCalculate_Validation(t *testing.T) {
	svc := newTestService(&MockScenarioRepository{}, repository.NewMemoryCache(0))

	tests := []struct {
		name   string
		mutate func(*domain.AffordabilityInputs)
	}{
		{"negative income", func(in *domain.AffordabilityInputs) { in.AnnualIncome = -1 }},
		{"negative debts", func(in *domain.AffordabilityInputs) { in.MonthlyDebts = -5 }},
		{"down payment over 99", func(in *domain.AffordabilityInputs) { in.DownPaymentPercent = 100 }},
		{"rate too high", func(in *domain.AffordabilityInputs) { in.InterestRate = 45 }},
		{"term too long", func(in *domain.AffordabilityInputs) { in.LoanTermYears = 60 }},
		{"unknown basis", func(in *domain.AffordabilityInputs) { in.DownPaymentBasis = "shares" }},
		{"negative hoa", func(in *domain.AffordabilityInputs) { in.HOAMonthlyFee = -10 }},
		{"dti over 100", func(in *domain.AffordabilityInputs) { in.DTIBackEndMax = 120 }},
		{"nan income", func(in *domain.AffordabilityInputs) { in.AnnualIncome = math.NaN() }},
		{"nan debts", func(in *domain.AffordabilityInputs) { in.MonthlyDebts = math.NaN() }},
		{"infinite tax override", func(in *domain.AffordabilityInputs) { in.AnnualPropertyTaxOverride = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := referenceInputs()
			tt.mutate(&in)

			_, err := svc.Calculate(context.Background(), in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExplore(t *testing.T) {
	svc := newTestService(&MockScenarioRepository{}, repository.NewMemoryCache(0))
	ctx := context.Background()

	t.Run("below max is comfortable", func(t *testing.T) {
		calc, err := svc.Explore(ctx, referenceInputs(), 200_000)
		require.NoError(t, err)

		assert.Equal(t, 200_000.0, calc.SelectedPrice)
		assert.Greater(t, calc.Result.MaxHomePrice, 300_000.0)
		assert.InDelta(t, 6_000, calc.Inputs.DownPaymentAmount, 0.01)
		assert.Equal(t, domain.SeverityPositive, calc.Status.Severity)
	})

	t.Run("above max stretches", func(t *testing.T) {
		calc, err := svc.Explore(ctx, referenceInputs(), 450_000)
		require.NoError(t, err)

		assert.Equal(t, domain.SeverityWarning, calc.Status.Severity)
		assert.Greater(t, calc.Result.FrontEndDTI, 36.0)
	})

	t.Run("invalid price", func(t *testing.T) {
		_, err := svc.Explore(ctx, referenceInputs(), 0)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Explore(ctx, referenceInputs(), math.NaN())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSchedule(t *testing.T) {
	svc := newTestService(&MockScenarioRepository{}, repository.NewMemoryCache(0))

	schedule, err := svc.Schedule(context.Background(), domain.ScheduleRequest{
		HomePrice: 300_000, InterestRate: 6.5, LoanTermYears: 30,
	})
	require.NoError(t, err)
	require.Len(t, schedule, 360)
	assert.True(t, schedule[359].RemainingBalance.IsZero())

	_, err = svc.Schedule(context.Background(), domain.ScheduleRequest{HomePrice: 300_000, InterestRate: 6.5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHistory(t *testing.T) {
	repo := repository.NewScenarioRepositoryMemory()
	svc := newTestService(repo, repository.NewMemoryCache(0))
	ctx := context.Background()

	_, err := svc.Calculate(ctx, referenceInputs())
	require.NoError(t, err)
	_, err = svc.Explore(ctx, referenceInputs(), 250_000)
	require.NoError(t, err)

	history, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 250_000.0, history[0].Calculation.SelectedPrice)

	failing := newTestService(&MockScenarioRepository{ForceError: true}, repository.NewMemoryCache(0))
	_, err = failing.History(ctx, 5)
	assert.Error(t, err)
}

func TestCalculate_AmountBasisNearPMIThreshold(t *testing.T) {
	svc := newTestService(&MockScenarioRepository{}, repository.NewMemoryCache(0))
	available := 75_000.0 / 12 * 36 / 100

	for _, amount := range []float64{69_000, 70_500, 71_400, 72_000, 74_000} {
		in := referenceInputs()
		in.DownPaymentBasis = domain.BasisAmount
		in.DownPaymentAmount = amount
		in.DownPaymentPercent = 0

		calc, err := svc.Calculate(context.Background(), in)
		require.NoError(t, err)

		price := calc.Result.MaxHomePrice
		require.Positive(t, price)
		assert.LessOrEqual(t, calc.Result.MonthlyPayment, available+0.005, "amount %.0f", amount)

		if amount/price*100 < domain.PMIExemptDownPaymentPercent {
			assert.Positive(t, calc.Result.PMI, "amount %.0f below 20%% of %.0f", amount, price)
		} else {
			assert.Zero(t, calc.Result.PMI, "amount %.0f", amount)
		}

		recomposed := domain.ComposeCosts(price, domain.ReconcileDownPayment(calc.Inputs, price))
		assert.InDelta(t, recomposed.Total, calc.Result.MonthlyPayment, 0.01, "amount %.0f", amount)
	}
}

func TestCacheKey(t *testing.T) {
	a, err := cacheKey("calculate", referenceInputs(), 0)
	require.NoError(t, err)
	b, err := cacheKey("explore", referenceInputs(), 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	nan := referenceInputs()
	nan.AnnualIncome = math.NaN()
	_, err = cacheKey("calculate", nan, 0)
	assert.Error(t, err)
}
