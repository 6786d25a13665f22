package service

const (
	MaxAnnualIncome    = 100_000_000.0
	MaxMonthlyAmount   = 10_000_000.0
	MaxInterestRate    = 30.0 // annual %
	MaxPropertyTaxRate = 10.0
	MaxInsuranceRate   = 50.0 // per $1000
	MaxPMIRate         = 5.0
	MaxDTIPercent      = 100.0
	MinTermYears       = 1
	MaxTermYears       = 50
	MaxExplorePrice    = 50_000_000.0

	MaxComparisonTerms  = 10
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)
