package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// AmortizationEntry is one monthly period of a repayment schedule.
type AmortizationEntry struct {
	Month               int             `json:"month"`
	TotalPayment        decimal.Decimal `json:"totalPayment"`
	InterestPaid        decimal.Decimal `json:"interestPaid"`
	PrincipalPaid       decimal.Decimal `json:"principalPaid"`
	CumulativeInterest  decimal.Decimal `json:"cumulativeInterest"`
	CumulativePrincipal decimal.Decimal `json:"cumulativePrincipal"`
	RemainingBalance    decimal.Decimal `json:"remainingBalance"`
}

// LoanAmountFor returns the financed amount for a price and down payment
// percentage. The percentage is clamped to [0, 99] so the same cap the cost
// composer applies also holds here.
func LoanAmountFor(price, downPaymentPercent float64) float64 {
	pct := math.Max(0, math.Min(downPaymentPercent, MaxDownPaymentShare*100))
	return price * (1 - pct/100)
}

// GenerateSchedule builds the month-by-month schedule for a home price.
//
// The payment comes from MonthlyPayment rounded to cents; interest is
// rounded to cents every period and the final period absorbs whatever
// rounding drift remains, so the schedule always ends at a zero balance and
// cumulative principal equals the loan amount exactly.
//
// A non-positive loan amount or term yields an empty schedule.
func GenerateSchedule(price, downPaymentPercent, annualRatePercent float64, termYears int) []AmortizationEntry {
	loan := decimal.NewFromFloat(LoanAmountFor(price, downPaymentPercent)).Round(2)
	if termYears <= 0 || loan.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	periods := termYears * 12
	monthlyRate := decimal.NewFromFloat(annualRatePercent / 100 / 12)
	payment := decimal.NewFromFloat(
		MonthlyPayment(loan.InexactFloat64(), annualRatePercent, termYears),
	).Round(2)

	schedule := make([]AmortizationEntry, 0, periods)
	remaining := loan
	cumulativeInterest := decimal.Zero
	cumulativePrincipal := decimal.Zero

	for month := 1; month <= periods; month++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principal := payment.Sub(interest)

		if month == periods || principal.GreaterThan(remaining) {
			principal = remaining
		}
		if principal.LessThan(decimal.Zero) {
			principal = decimal.Zero
		}

		remaining = remaining.Sub(principal)
		cumulativeInterest = cumulativeInterest.Add(interest)
		cumulativePrincipal = cumulativePrincipal.Add(principal)

		schedule = append(schedule, AmortizationEntry{
			Month:               month,
			TotalPayment:        principal.Add(interest),
			InterestPaid:        interest,
			PrincipalPaid:       principal,
			CumulativeInterest:  cumulativeInterest,
			CumulativePrincipal: cumulativePrincipal,
			RemainingBalance:    remaining,
		})
	}

	return schedule
}

// ScheduleTotals sums payment, interest and principal over a schedule.
func ScheduleTotals(schedule []AmortizationEntry) (payment, interest, principal decimal.Decimal) {
	for _, e := range schedule {
		payment = payment.Add(e.TotalPayment)
		interest = interest.Add(e.InterestPaid)
		principal = principal.Add(e.PrincipalPaid)
	}
	return payment, interest, principal
}
