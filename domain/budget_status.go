package domain

// Severity is the display tone of a budget status message.
type Severity string

const (
	SeverityUnknown  Severity = "unknown"
	SeverityWarning  Severity = "warning"
	SeverityPositive Severity = "positive"
	SeverityInfo     Severity = "info"
)

// DisplayDTIPolicy holds the DTI thresholds used only for status messaging.
// They are independent of the solver's DTIFrontEndMax and DTIBackEndMax.
type DisplayDTIPolicy struct {
	StretchFrontEnd     float64
	StretchBackEnd      float64
	ComfortableFrontEnd float64
	ComfortableBackEnd  float64
}

// DefaultDisplayDTIPolicy is the 28/36 comfortable, 35/42 stretched scale.
var DefaultDisplayDTIPolicy = DisplayDTIPolicy{
	StretchFrontEnd:     35,
	StretchBackEnd:      42,
	ComfortableFrontEnd: 28,
	ComfortableBackEnd:  36,
}

// BudgetStatus is a qualitative reading of a chosen price.
type BudgetStatus struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

const (
	MessageUnableToCalculate = "Unable to calculate"
	MessageStretchesBudget   = "This price stretches your budget"
	MessageComfortable       = "This price is comfortable for your budget"
	MessageManageable        = "This price is manageable, monitor spending"
)

// ClassifyBudget applies DefaultDisplayDTIPolicy.
func ClassifyBudget(selectedPrice, maxAffordablePrice, frontEndDTI, backEndDTI float64) BudgetStatus {
	return DefaultDisplayDTIPolicy.Classify(selectedPrice, maxAffordablePrice, frontEndDTI, backEndDTI)
}

// Classify maps a price and its DTI ratios to a status. Rules are checked in
// order and the first match wins.
func (p DisplayDTIPolicy) Classify(selectedPrice, maxAffordablePrice, frontEndDTI, backEndDTI float64) BudgetStatus {
	switch {
	case selectedPrice == 0 || maxAffordablePrice == 0:
		return BudgetStatus{Message: MessageUnableToCalculate, Severity: SeverityUnknown}
	case selectedPrice > maxAffordablePrice,
		frontEndDTI >= p.StretchFrontEnd,
		backEndDTI >= p.StretchBackEnd:
		return BudgetStatus{Message: MessageStretchesBudget, Severity: SeverityWarning}
	case frontEndDTI <= p.ComfortableFrontEnd && backEndDTI <= p.ComfortableBackEnd:
		return BudgetStatus{Message: MessageComfortable, Severity: SeverityPositive}
	default:
		return BudgetStatus{Message: MessageManageable, Severity: SeverityInfo}
	}
}
