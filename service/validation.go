package service

import (
	"errors"
	"fmt"
	"math"

	"home-affordability/domain"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateInputs(in domain.AffordabilityInputs) error {
	if !allFinite(
		in.AnnualIncome, in.MonthlyDebts, in.DownPaymentPercent, in.DownPaymentAmount,
		in.InterestRate, in.PropertyTaxRate, in.AnnualPropertyTaxOverride, in.InsuranceRate,
		in.AnnualInsuranceOverride, in.HOAMonthlyFee, in.PMIRate, in.DTIFrontEndMax, in.DTIBackEndMax,
	) {
		return invalid("inputs must be finite numbers")
	}
	if in.AnnualIncome < 0 || in.AnnualIncome > MaxAnnualIncome {
		return invalid("annual income must be between 0 and %.0f", MaxAnnualIncome)
	}
	if in.MonthlyDebts < 0 || in.MonthlyDebts > MaxMonthlyAmount {
		return invalid("monthly debts must be between 0 and %.0f", MaxMonthlyAmount)
	}

	switch in.DownPaymentBasis {
	case "", domain.BasisPercent:
		if in.DownPaymentPercent < 0 || in.DownPaymentPercent > 99 {
			return invalid("down payment percent must be between 0 and 99")
		}
	case domain.BasisAmount:
		if in.DownPaymentAmount < 0 {
			return invalid("down payment amount must not be negative")
		}
	default:
		return invalid("unknown down payment basis %q", in.DownPaymentBasis)
	}

	if in.InterestRate < 0 || in.InterestRate > MaxInterestRate {
		return invalid("interest rate must be between 0 and %.0f%%", MaxInterestRate)
	}
	if err := validateTerm(in.LoanTermYears); err != nil {
		return err
	}
	if in.PropertyTaxRate < 0 || in.PropertyTaxRate > MaxPropertyTaxRate {
		return invalid("property tax rate must be between 0 and %.0f%%", MaxPropertyTaxRate)
	}
	if in.InsuranceRate < 0 || in.InsuranceRate > MaxInsuranceRate {
		return invalid("insurance rate must be between 0 and %.0f per $1000", MaxInsuranceRate)
	}
	if in.AnnualPropertyTaxOverride < 0 || in.AnnualInsuranceOverride < 0 {
		return invalid("annual overrides must not be negative")
	}
	if in.HOAMonthlyFee < 0 || in.HOAMonthlyFee > MaxMonthlyAmount {
		return invalid("HOA fee must be between 0 and %.0f", MaxMonthlyAmount)
	}
	if in.PMIRate < 0 || in.PMIRate > MaxPMIRate {
		return invalid("PMI rate must be between 0 and %.0f%%", MaxPMIRate)
	}
	if in.DTIFrontEndMax <= 0 || in.DTIFrontEndMax > MaxDTIPercent {
		return invalid("front-end DTI limit must be in (0, %.0f]", MaxDTIPercent)
	}
	if in.DTIBackEndMax <= 0 || in.DTIBackEndMax > MaxDTIPercent {
		return invalid("back-end DTI limit must be in (0, %.0f]", MaxDTIPercent)
	}
	return nil
}

func validateTerm(years int) error {
	if years < MinTermYears || years > MaxTermYears {
		return invalid("loan term must be between %d and %d years", MinTermYears, MaxTermYears)
	}
	return nil
}

func validateScheduleRequest(req domain.ScheduleRequest) error {
	if !allFinite(req.HomePrice, req.DownPaymentPercent, req.InterestRate) {
		return invalid("inputs must be finite numbers")
	}
	if req.HomePrice <= 0 || req.HomePrice > MaxExplorePrice {
		return invalid("home price must be between 0 and %.0f", MaxExplorePrice)
	}
	if req.DownPaymentPercent < 0 || req.DownPaymentPercent > 99 {
		return invalid("down payment percent must be between 0 and 99")
	}
	if req.InterestRate < 0 || req.InterestRate > MaxInterestRate {
		return invalid("interest rate must be between 0 and %.0f%%", MaxInterestRate)
	}
	return validateTerm(req.LoanTermYears)
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
