package domain

// DownPaymentBasis names which view of the down payment is authoritative.
type DownPaymentBasis string

const (
	BasisPercent DownPaymentBasis = "percent"
	BasisAmount  DownPaymentBasis = "amount"
)

// Search bounds and policy constants used by the affordability solver.
const (
	MinSearchPrice  = 50_000.0
	MaxSearchPrice  = 5_000_000.0
	SearchTolerance = 100.0

	// MaxDownPaymentShare keeps the loan amount strictly positive.
	MaxDownPaymentShare = 0.99
	// PMIExemptDownPaymentPercent is the down payment at or above which no PMI is charged.
	PMIExemptDownPaymentPercent = 20.0
)

// AffordabilityInputs is the borrower and loan parameter set.
type AffordabilityInputs struct {
	AnnualIncome float64 `json:"annualIncome"`
	MonthlyDebts float64 `json:"monthlyDebts"`

	DownPaymentPercent float64          `json:"downPaymentPercent"`
	DownPaymentAmount  float64          `json:"downPaymentAmount"`
	DownPaymentBasis   DownPaymentBasis `json:"downPaymentBasis,omitempty"`

	InterestRate  float64 `json:"interestRate"`
	LoanTermYears int     `json:"loanTermYears"`

	PropertyTaxRate           float64 `json:"propertyTaxRate"`
	AnnualPropertyTaxOverride float64 `json:"annualPropertyTaxOverride,omitempty"`
	InsuranceRate             float64 `json:"insuranceRate"` // per $1000 of price, annually
	AnnualInsuranceOverride   float64 `json:"annualInsuranceOverride,omitempty"`
	HOAMonthlyFee             float64 `json:"hoaMonthlyFee"`
	PMIRate                   float64 `json:"pmiRate"`

	DTIFrontEndMax float64 `json:"dtiFrontEndMax"`
	DTIBackEndMax  float64 `json:"dtiBackEndMax"`
}

// AffordabilityResult is the monthly cost picture at one home price.
type AffordabilityResult struct {
	MaxHomePrice         float64 `json:"maxHomePrice"`
	MonthlyPayment       float64 `json:"monthlyPayment"`
	PrincipalAndInterest float64 `json:"principalAndInterest"`
	PropertyTaxes        float64 `json:"propertyTaxes"`
	Insurance            float64 `json:"insurance"`
	PMI                  float64 `json:"pmi"`
	HOAFees              float64 `json:"hoaFees"`
	FrontEndDTI          float64 `json:"frontEndDTI"`
	BackEndDTI           float64 `json:"backEndDTI"`
}

// CostBreakdown is the output of ComposeCosts.
type CostBreakdown struct {
	PrincipalAndInterest float64
	PropertyTax          float64
	Insurance            float64
	PMI                  float64
	HOAFees              float64
	Total                float64
}
