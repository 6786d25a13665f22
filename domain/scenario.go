package domain

import (
	"time"

	"github.com/google/uuid"
)

// Calculation is what the service returns for a solved or explored price.
type Calculation struct {
	Inputs        AffordabilityInputs `json:"inputs"`
	SelectedPrice float64             `json:"selectedPrice"`
	Result        AffordabilityResult `json:"result"`
	Status        BudgetStatus        `json:"status"`
	Breakdown     []BreakdownSlice    `json:"breakdown"`
}

// Scenario is a saved calculation.
type Scenario struct {
	ID          uuid.UUID   `json:"id"`
	Calculation Calculation `json:"calculation"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewScenario stamps a calculation with a fresh id and the current time.
func NewScenario(c Calculation) Scenario {
	return Scenario{
		ID:          uuid.New(),
		Calculation: c,
		CreatedAt:   time.Now().UTC(),
	}
}

// ScheduleRequest carries the generator parameters over the wire.
type ScheduleRequest struct {
	HomePrice          float64 `json:"homePrice"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	InterestRate       float64 `json:"interestRate"`
	LoanTermYears      int     `json:"loanTermYears"`
}
