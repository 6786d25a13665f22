package domain

import "math"

// ReconcileDownPayment re-derives the dependent down payment view against
// referencePrice. The authoritative view is left untouched. An empty basis
// is treated as BasisPercent.
func ReconcileDownPayment(in AffordabilityInputs, referencePrice float64) AffordabilityInputs {
	out := in
	switch in.DownPaymentBasis {
	case BasisAmount:
		if referencePrice <= 0 {
			out.DownPaymentPercent = 0
			return out
		}
		pct := in.DownPaymentAmount / referencePrice * 100
		out.DownPaymentPercent = math.Max(0, math.Min(pct, MaxDownPaymentShare*100))
	default:
		out.DownPaymentBasis = BasisPercent
		if referencePrice <= 0 {
			out.DownPaymentAmount = 0
			return out
		}
		out.DownPaymentAmount = referencePrice * in.DownPaymentPercent / 100
	}
	return out
}
