package domain

// ValidationIssue is a single error or warning found while validating a
// parsed feature document.
type ValidationIssue struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// Statistics summarizes a validated feature document.
type Statistics struct {
	Scenarios           int            `json:"scenarios"`
	Outlines            int            `json:"outlines"`
	TotalSteps          int            `json:"total_steps"`
	StepsByKeyword      map[string]int `json:"steps_by_keyword"`
	ExampleRows         int            `json:"example_rows"`
	AvgStepsPerScenario float64        `json:"avg_steps_per_scenario"`
}

// ValidationResult is the outcome of validating one feature document.
// Errors and warnings keep their discovery order.
type ValidationResult struct {
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
	Stats    Statistics        `json:"statistics"`
}

// IsValid reports whether validation produced no errors. Warnings are
// advisory and do not affect validity.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}
