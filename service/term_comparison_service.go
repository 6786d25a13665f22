package service

import (
	"context"
	"sort"

	"home-affordability/domain"
)

type TermComparisonService struct {
	affordability *AffordabilityService
}

func NewTermComparisonService(affordability *AffordabilityService) *TermComparisonService {
	return &TermComparisonService{affordability: affordability}
}

// CompareTerms re-solves the affordability problem for each candidate loan
// term and ranks the options by the requested preference.
func (s *TermComparisonService) CompareTerms(
	ctx context.Context,
	input domain.TermComparisonInput,
) (domain.TermComparison, error) {
	terms := input.Terms
	if len(terms) == 0 {
		terms = domain.DefaultComparisonTerms
	}
	if len(terms) > MaxComparisonTerms {
		return domain.TermComparison{}, invalid("at most %d terms can be compared", MaxComparisonTerms)
	}

	preference := input.Preference
	if preference == "" {
		preference = domain.PreferBalanced
	}
	switch preference {
	case domain.PreferMaxPrice, domain.PreferLowInterest, domain.PreferBalanced:
	default:
		return domain.TermComparison{}, invalid("unknown preference %q", preference)
	}

	base := s.affordability.applyDefaults(input.Inputs)
	seen := make(map[int]bool, len(terms))
	options := make([]domain.TermOption, 0, len(terms))

	for _, term := range terms {
		if err := validateTerm(term); err != nil {
			return domain.TermComparison{}, err
		}
		if seen[term] {
			return domain.TermComparison{}, invalid("duplicate term %d", term)
		}
		seen[term] = true

		in := base
		in.LoanTermYears = term
		if err := validateInputs(in); err != nil {
			return domain.TermComparison{}, err
		}

		result := domain.Solve(in)
		in = domain.ReconcileDownPayment(in, result.MaxHomePrice)

		loan := domain.LoanAmountFor(result.MaxHomePrice, in.DownPaymentPercent)
		totalInterest := 0.0
		if result.MaxHomePrice > 0 {
			totalInterest = result.PrincipalAndInterest*float64(term*12) - loan
		}

		options = append(options, domain.TermOption{
			LoanTermYears: term,
			Result:        roundResult(result),
			LoanAmount:    roundTo2Decimals(loan),
			TotalInterest: roundTo2Decimals(totalInterest),
		})
	}

	scoreOptions(options, preference)

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Score != options[j].Score {
			return options[i].Score > options[j].Score
		}
		return options[i].LoanTermYears < options[j].LoanTermYears
	})

	s.affordability.metrics.Calculations.WithLabelValues("compare_terms").Inc()

	recommended := 0
	if options[0].Result.MaxHomePrice > 0 {
		recommended = options[0].LoanTermYears
	}

	return domain.TermComparison{
		RecommendedTerm: recommended,
		Options:         options,
	}, nil
}

// scoreOptions rates each option 0-10 on price (higher is better) and total
// interest (lower is better), then weights the two by preference.
func scoreOptions(options []domain.TermOption, preference domain.TermPreference) {
	minPrice, maxPrice := options[0].Result.MaxHomePrice, options[0].Result.MaxHomePrice
	minInterest, maxInterest := options[0].TotalInterest, options[0].TotalInterest
	for _, o := range options[1:] {
		minPrice = min(minPrice, o.Result.MaxHomePrice)
		maxPrice = max(maxPrice, o.Result.MaxHomePrice)
		minInterest = min(minInterest, o.TotalInterest)
		maxInterest = max(maxInterest, o.TotalInterest)
	}

	priceWeight, interestWeight := 0.5, 0.5
	switch preference {
	case domain.PreferMaxPrice:
		priceWeight, interestWeight = 0.7, 0.3
	case domain.PreferLowInterest:
		priceWeight, interestWeight = 0.3, 0.7
	}

	for i := range options {
		o := &options[i]
		if o.Result.MaxHomePrice == 0 {
			o.Reason = "No home in the search range is affordable with this term"
			continue
		}

		priceScore, interestScore := 10.0, 10.0
		if maxPrice > minPrice {
			priceScore = 10 * (o.Result.MaxHomePrice - minPrice) / (maxPrice - minPrice)
		}
		if maxInterest > minInterest {
			interestScore = 10 * (1 - (o.TotalInterest-minInterest)/(maxInterest-minInterest))
		}

		o.Score = roundTo2Decimals(priceWeight*priceScore + interestWeight*interestScore)
		o.Reason = termReason(preference)
	}
}

func termReason(preference domain.TermPreference) string {
	switch preference {
	case domain.PreferMaxPrice:
		return "Term chosen to maximize the affordable home price"
	case domain.PreferLowInterest:
		return "Term chosen to minimize total interest over the life of the loan"
	default:
		return "Best balance between affordable price and total interest"
	}
}
