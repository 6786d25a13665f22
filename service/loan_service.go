package service

import (
	"home-affordability/domain"
	"home-affordability/observability"
)

const MaxLoanAmount = 50_000_000.0

type LoanService struct {
	metrics *observability.Metrics
}

func NewLoanService(metrics *observability.Metrics) *LoanService {
	return &LoanService{metrics: metrics}
}

// QuotePayment prices a plain amortizing loan with the same payment formula
// the affordability solver uses.
func (s *LoanService) QuotePayment(input domain.LoanInput) (domain.LoanResult, error) {
	if input.Amount <= 0 || input.Amount > MaxLoanAmount {
		return domain.LoanResult{}, invalid("loan amount must be between 0 and %.0f", MaxLoanAmount)
	}
	if input.InterestRate < 0 || input.InterestRate > MaxInterestRate {
		return domain.LoanResult{}, invalid("interest rate must be between 0 and %.0f%%", MaxInterestRate)
	}
	if err := validateTerm(input.LoanTermYears); err != nil {
		return domain.LoanResult{}, err
	}

	payment := domain.MonthlyPayment(input.Amount, input.InterestRate, input.LoanTermYears)
	total := payment * float64(input.LoanTermYears*12)

	s.metrics.Calculations.WithLabelValues("loan_payment").Inc()

	return domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - input.Amount),
	}, nil
}
