package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/cespare/xxhash/v2"

	"home-affordability/config"
	"home-affordability/domain"
	"home-affordability/observability"
	"home-affordability/repository"
)

// roundTo2Decimals rounds a float64 to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type AffordabilityService struct {
	scenarios repository.ScenarioRepository
	cache     repository.CacheRepository
	defaults  config.EngineDefaults
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewAffordabilityService wires the engine to its history store and result cache.
func NewAffordabilityService(
	scenarios repository.ScenarioRepository,
	cache repository.CacheRepository,
	defaults config.EngineDefaults,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *AffordabilityService {
	return &AffordabilityService{
		scenarios: scenarios,
		cache:     cache,
		defaults:  defaults,
		metrics:   metrics,
		logger:    logger,
	}
}

// Calculate solves the maximum affordable price for in and describes the
// monthly cost at that price.
func (s *AffordabilityService) Calculate(
	ctx context.Context,
	in domain.AffordabilityInputs,
) (domain.Calculation, error) {
	in = s.applyDefaults(in)
	if err := validateInputs(in); err != nil {
		return domain.Calculation{}, err
	}

	key, err := cacheKey("calculate", in, 0)
	if err != nil {
		return domain.Calculation{}, err
	}
	if calc, ok := s.cached(ctx, key); ok {
		return calc, nil
	}

	result := domain.Solve(in)
	in = domain.ReconcileDownPayment(in, result.MaxHomePrice)

	calc := buildCalculation(in, result.MaxHomePrice, result)
	s.metrics.Calculations.WithLabelValues("calculate").Inc()
	s.metrics.SolvedPrice.Observe(result.MaxHomePrice)

	s.logger.DebugContext(ctx, "affordability solved",
		"max_home_price", calc.Result.MaxHomePrice,
		"front_end_dti", calc.Result.FrontEndDTI,
		"back_end_dti", calc.Result.BackEndDTI,
	)

	s.remember(ctx, key, calc)
	return calc, nil
}

// Explore describes the monthly cost at a user-chosen price. The maximum is
// still solved so the budget status can compare the two.
func (s *AffordabilityService) Explore(
	ctx context.Context,
	in domain.AffordabilityInputs,
	price float64,
) (domain.Calculation, error) {
	in = s.applyDefaults(in)
	if err := validateInputs(in); err != nil {
		return domain.Calculation{}, err
	}
	if !allFinite(price) || price <= 0 || price > MaxExplorePrice {
		return domain.Calculation{}, invalid("explored price must be between 0 and %.0f", MaxExplorePrice)
	}

	key, err := cacheKey("explore", in, price)
	if err != nil {
		return domain.Calculation{}, err
	}
	if calc, ok := s.cached(ctx, key); ok {
		return calc, nil
	}

	in = domain.ReconcileDownPayment(in, price)
	maxPrice := domain.SolveMaxPrice(in)
	result := domain.Evaluate(price, in)
	result.MaxHomePrice = maxPrice

	calc := buildCalculation(in, price, result)
	s.metrics.Calculations.WithLabelValues("explore").Inc()

	s.remember(ctx, key, calc)
	return calc, nil
}

// Schedule generates the amortization schedule for a price.
func (s *AffordabilityService) Schedule(
	_ context.Context,
	req domain.ScheduleRequest,
) ([]domain.AmortizationEntry, error) {
	if err := validateScheduleRequest(req); err != nil {
		return nil, err
	}

	s.metrics.Calculations.WithLabelValues("schedule").Inc()
	return domain.GenerateSchedule(req.HomePrice, req.DownPaymentPercent, req.InterestRate, req.LoanTermYears), nil
}

// History returns the most recently saved scenarios.
func (s *AffordabilityService) History(ctx context.Context, limit int) ([]domain.Scenario, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	scenarios, err := s.scenarios.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return scenarios, nil
}

// applyDefaults fills parameters a client left at zero.
func (s *AffordabilityService) applyDefaults(in domain.AffordabilityInputs) domain.AffordabilityInputs {
	if in.PropertyTaxRate == 0 && in.AnnualPropertyTaxOverride == 0 {
		in.PropertyTaxRate = s.defaults.PropertyTaxRate
	}
	if in.InsuranceRate == 0 && in.AnnualInsuranceOverride == 0 {
		in.InsuranceRate = s.defaults.InsuranceRate
	}
	if in.PMIRate == 0 {
		in.PMIRate = s.defaults.PMIRate
	}
	if in.DTIFrontEndMax == 0 {
		in.DTIFrontEndMax = s.defaults.DTIFrontEndMax
	}
	if in.DTIBackEndMax == 0 {
		in.DTIBackEndMax = s.defaults.DTIBackEndMax
	}
	if in.LoanTermYears == 0 {
		in.LoanTermYears = s.defaults.LoanTermYears
	}
	if in.DownPaymentBasis == "" {
		in.DownPaymentBasis = domain.BasisPercent
	}
	return in
}

func (s *AffordabilityService) cached(ctx context.Context, key string) (domain.Calculation, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.Calculation{}, false
	}

	var calc domain.Calculation
	if err := json.Unmarshal([]byte(raw), &calc); err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable cache entry", "key", key, "error", err)
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.Calculation{}, false
	}

	s.metrics.CacheLookups.WithLabelValues("hit").Inc()
	return calc, true
}

// remember saves the calculation to history and the cache. Neither failure
// is fatal to the request.
func (s *AffordabilityService) remember(ctx context.Context, key string, calc domain.Calculation) {
	if err := s.scenarios.Save(ctx, domain.NewScenario(calc)); err != nil {
		s.logger.WarnContext(ctx, "failed to save scenario", "error", err)
	}

	raw, err := json.Marshal(calc)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode calculation for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		s.logger.WarnContext(ctx, "failed to cache calculation", "key", key, "error", err)
	}
}

func buildCalculation(
	in domain.AffordabilityInputs,
	selectedPrice float64,
	result domain.AffordabilityResult,
) domain.Calculation {
	status := domain.ClassifyBudget(
		selectedPrice, result.MaxHomePrice, result.FrontEndDTI, result.BackEndDTI,
	)

	result = roundResult(result)
	in.DownPaymentAmount = roundTo2Decimals(in.DownPaymentAmount)
	in.DownPaymentPercent = roundTo2Decimals(in.DownPaymentPercent)

	breakdown := domain.Breakdown(result)
	for i := range breakdown {
		breakdown[i].Percent = roundTo2Decimals(breakdown[i].Percent)
	}

	return domain.Calculation{
		Inputs:        in,
		SelectedPrice: selectedPrice,
		Result:        result,
		Status:        status,
		Breakdown:     breakdown,
	}
}

func roundResult(r domain.AffordabilityResult) domain.AffordabilityResult {
	return domain.AffordabilityResult{
		MaxHomePrice:         r.MaxHomePrice,
		MonthlyPayment:       roundTo2Decimals(r.MonthlyPayment),
		PrincipalAndInterest: roundTo2Decimals(r.PrincipalAndInterest),
		PropertyTaxes:        roundTo2Decimals(r.PropertyTaxes),
		Insurance:            roundTo2Decimals(r.Insurance),
		PMI:                  roundTo2Decimals(r.PMI),
		HOAFees:              roundTo2Decimals(r.HOAFees),
		FrontEndDTI:          roundTo2Decimals(r.FrontEndDTI),
		BackEndDTI:           roundTo2Decimals(r.BackEndDTI),
	}
}

func cacheKey(op string, in domain.AffordabilityInputs, price float64) (string, error) {
	raw, err := json.Marshal(struct {
		Inputs domain.AffordabilityInputs
		Price  float64
	}{in, price})
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	return fmt.Sprintf("%s:%016x", op, xxhash.Sum64(raw)), nil
}
