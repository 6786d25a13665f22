package domain

// LoanInput is a plain loan payment quote request.
type LoanInput struct {
	Amount        float64 `json:"amount"`
	InterestRate  float64 `json:"interestRate"`
	LoanTermYears int     `json:"loanTermYears"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}
