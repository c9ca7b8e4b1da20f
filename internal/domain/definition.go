package domain

// StepDefinition is a declared step implementation extracted from a step
// definition source file or enumerated from a live registry.
type StepDefinition struct {
	Keyword     string   `json:"keyword"`
	Pattern     string   `json:"pattern"`
	File        string   `json:"file,omitempty"`
	Line        int      `json:"line,omitempty"`
	Handler     string   `json:"handler,omitempty"` // handler identity (derived name)
	Parameters  []string `json:"parameters,omitempty"`
	Implemented bool     `json:"implemented"`
}

// Key returns the (keyword, pattern) identity used for duplicate and
// unused-definition bookkeeping.
func (d StepDefinition) Key() string {
	return d.Keyword + " " + d.Pattern
}

// StepUsage is one concrete step occurrence in a feature file, with
// provenance for reporting.
type StepUsage struct {
	Keyword     string `json:"keyword"`
	Text        string `json:"text"`
	FeatureFile string `json:"feature_file,omitempty"`
	Feature     string `json:"feature,omitempty"`
	Scenario    string `json:"scenario,omitempty"`
	Line        int    `json:"line,omitempty"`
}
