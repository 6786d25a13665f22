package domain

import "math"

// ComposeCosts computes every monthly housing cost for a candidate price.
func ComposeCosts(candidatePrice float64, in AffordabilityInputs) CostBreakdown {
	downPayment := math.Min(
		candidatePrice*in.DownPaymentPercent/100,
		candidatePrice*MaxDownPaymentShare,
	)
	loanAmount := candidatePrice - downPayment

	pAndI := MonthlyPayment(loanAmount, in.InterestRate, in.LoanTermYears)

	var propertyTax float64
	if in.AnnualPropertyTaxOverride > 0 {
		propertyTax = in.AnnualPropertyTaxOverride / 12
	} else {
		propertyTax = candidatePrice * in.PropertyTaxRate / 100 / 12
	}

	var insurance float64
	if in.AnnualInsuranceOverride > 0 {
		insurance = in.AnnualInsuranceOverride / 12
	} else {
		insurance = candidatePrice * in.InsuranceRate / 1000 / 12
	}

	var pmi float64
	if effectiveDownPaymentPercent(downPayment, candidatePrice) < PMIExemptDownPaymentPercent {
		pmi = loanAmount * in.PMIRate / 100 / 12
	}

	return CostBreakdown{
		PrincipalAndInterest: pAndI,
		PropertyTax:          propertyTax,
		Insurance:            insurance,
		PMI:                  pmi,
		HOAFees:              in.HOAMonthlyFee,
		Total:                pAndI + propertyTax + insurance + pmi + in.HOAMonthlyFee,
	}
}

func effectiveDownPaymentPercent(downPayment, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return downPayment / price * 100
}
