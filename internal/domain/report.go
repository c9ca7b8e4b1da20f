package domain

// MissingStep is a feature step usage with no matching step definition.
type MissingStep struct {
	Usage            StepUsage `json:"usage"`
	SuggestedPattern string    `json:"suggested_pattern"`
	Skeleton         string    `json:"skeleton,omitempty"`
	Acknowledged     bool      `json:"acknowledged,omitempty"`
}

// UnusedDefinition is a step definition matched by no feature step usage.
type UnusedDefinition struct {
	Definition   StepDefinition `json:"definition"`
	Acknowledged bool           `json:"acknowledged,omitempty"`
}

// FileValidation preserves the validator's findings for one feature file
// that discovery managed to parse.
type FileValidation struct {
	File     string            `json:"file"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
	Warnings []ValidationIssue `json:"warnings,omitempty"`
}

// CoverageMeta contains run-level metadata for a coverage report.
type CoverageMeta struct {
	FeatureFiles    int     `json:"feature_files"`
	StepFiles       int     `json:"step_files"`
	SkippedFiles    int     `json:"skipped_files"`
	TotalUsages     int     `json:"total_usages"`
	CoveredUsages   int     `json:"covered_usages"`
	TotalDefs       int     `json:"total_definitions"`
	ImplementedDefs int     `json:"implemented_definitions"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// CoverageReport is the complete output of a discovery run.
// Coverage and Implementation are percentages bounded to [0,100];
// both are 100 when their denominator is zero.
type CoverageReport struct {
	Meta           CoverageMeta       `json:"meta"`
	Coverage       float64            `json:"coverage"`
	Implementation float64            `json:"implementation"`
	Missing        []MissingStep      `json:"missing"`
	Unused         []UnusedDefinition `json:"unused"`
	Definitions    []StepDefinition   `json:"definitions"`
	Usages         []StepUsage        `json:"usage"`
	UsageByKeyword map[string]int     `json:"usage_by_keyword"`
	Validation     []FileValidation   `json:"validation,omitempty"`
}

// RunRecord is one persisted history row summarizing a past coverage run.
type RunRecord struct {
	ID             string  `json:"id"`
	Timestamp      string  `json:"timestamp"`
	TotalUsages    int     `json:"total_usages"`
	CoveredUsages  int     `json:"covered_usages"`
	Missing        int     `json:"missing"`
	Unused         int     `json:"unused"`
	Definitions    int     `json:"definitions"`
	Coverage       float64 `json:"coverage"`
	Implementation float64 `json:"implementation"`
}
