package domain

import "math"

// AvailableForHousing returns the largest monthly housing payment both DTI
// caps allow. A non-positive value means no home is affordable.
func AvailableForHousing(in AffordabilityInputs) float64 {
	grossMonthlyIncome := in.AnnualIncome / 12
	maxHousingPayment := grossMonthlyIncome * in.DTIFrontEndMax / 100
	maxTotalDebtPayment := grossMonthlyIncome * in.DTIBackEndMax / 100

	return math.Min(maxHousingPayment, maxTotalDebtPayment-in.MonthlyDebts)
}

// SolveMaxPrice binary searches whole-dollar prices between MinSearchPrice and
// MaxSearchPrice for the highest one whose composed monthly cost fits within
// AvailableForHousing. It returns 0 when nothing in range is affordable.
//
// With BasisAmount the down payment percent is re-derived at every candidate
// price, so PMI and the loan amount always match the price being tested.
func SolveMaxPrice(in AffordabilityInputs) float64 {
	available := AvailableForHousing(in)
	if available <= 0 {
		return 0
	}

	low, high := MinSearchPrice, MaxSearchPrice
	maxPrice := 0.0

	for high-low > SearchTolerance {
		mid := math.Floor((low + high) / 2)
		if ComposeCosts(mid, ReconcileDownPayment(in, mid)).Total <= available {
			maxPrice = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	return maxPrice
}

// Evaluate composes the full result at price. MaxHomePrice is set to price;
// callers exploring a price other than the solved maximum overwrite it.
// The down payment is reconciled against price first.
// A non-positive price yields a zero result that still carries the HOA fee.
func Evaluate(price float64, in AffordabilityInputs) AffordabilityResult {
	if price <= 0 {
		return AffordabilityResult{HOAFees: in.HOAMonthlyFee}
	}

	costs := ComposeCosts(price, ReconcileDownPayment(in, price))
	frontEnd, backEnd := dtiRatios(costs.Total, in)

	return AffordabilityResult{
		MaxHomePrice:         price,
		MonthlyPayment:       costs.Total,
		PrincipalAndInterest: costs.PrincipalAndInterest,
		PropertyTaxes:        costs.PropertyTax,
		Insurance:            costs.Insurance,
		PMI:                  costs.PMI,
		HOAFees:              costs.HOAFees,
		FrontEndDTI:          frontEnd,
		BackEndDTI:           backEnd,
	}
}

// Solve finds the maximum affordable price and evaluates it.
func Solve(in AffordabilityInputs) AffordabilityResult {
	return Evaluate(SolveMaxPrice(in), in)
}

func dtiRatios(housingPayment float64, in AffordabilityInputs) (frontEnd, backEnd float64) {
	grossMonthlyIncome := in.AnnualIncome / 12
	if grossMonthlyIncome <= 0 {
		return 0, 0
	}
	frontEnd = housingPayment / grossMonthlyIncome * 100
	backEnd = (housingPayment + in.MonthlyDebts) / grossMonthlyIncome * 100
	return frontEnd, backEnd
}
