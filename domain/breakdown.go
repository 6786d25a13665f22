package domain

// BreakdownSlice is one component of the monthly payment pie chart.
type BreakdownSlice struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// Breakdown lists the non-zero monthly payment components with their share
// of the total.
func Breakdown(r AffordabilityResult) []BreakdownSlice {
	components := []struct {
		label  string
		amount float64
	}{
		{"Principal & Interest", r.PrincipalAndInterest},
		{"Property Taxes", r.PropertyTaxes},
		{"Insurance", r.Insurance},
		{"PMI", r.PMI},
		{"HOA Fees", r.HOAFees},
	}

	slices := make([]BreakdownSlice, 0, len(components))
	for _, c := range components {
		if c.amount <= 0 {
			continue
		}
		var pct float64
		if r.MonthlyPayment > 0 {
			pct = c.amount / r.MonthlyPayment * 100
		}
		slices = append(slices, BreakdownSlice{Label: c.label, Amount: c.amount, Percent: pct})
	}
	return slices
}
