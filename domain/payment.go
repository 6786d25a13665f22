package domain

import "math"

// MonthlyPayment returns the fixed monthly principal and interest payment for
// an amortizing loan. A non-positive loan amount pays nothing and a 0% rate
// is split evenly across the term.
func MonthlyPayment(loanAmount, annualRatePercent float64, termYears int) float64 {
	if loanAmount <= 0 {
		return 0
	}

	monthlyRate := annualRatePercent / 100 / 12
	n := float64(termYears * 12)

	if monthlyRate == 0 {
		return loanAmount / n
	}

	factor := math.Pow(1+monthlyRate, n)
	return loanAmount * monthlyRate * factor / (factor - 1)
}
