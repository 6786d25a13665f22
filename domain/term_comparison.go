package domain

// TermPreference selects how term options are ranked.
type TermPreference string

const (
	PreferMaxPrice    TermPreference = "maximize_price"
	PreferLowInterest TermPreference = "minimize_interest"
	PreferBalanced    TermPreference = "balanced"
)

// DefaultComparisonTerms are the loan terms offered by the calculator.
var DefaultComparisonTerms = []int{15, 20, 30}

type TermComparisonInput struct {
	Inputs     AffordabilityInputs `json:"inputs"`
	Terms      []int               `json:"terms,omitempty"`
	Preference TermPreference      `json:"preference,omitempty"`
}

type TermOption struct {
	LoanTermYears int                 `json:"loanTermYears"`
	Result        AffordabilityResult `json:"result"`
	LoanAmount    float64             `json:"loanAmount"`
	TotalInterest float64             `json:"totalInterest"`
	Score         float64             `json:"score"`
	Reason        string              `json:"reason"`
}

type TermComparison struct {
	RecommendedTerm int          `json:"recommendedTerm"`
	Options         []TermOption `json:"options"`
}
