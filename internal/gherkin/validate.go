package gherkin

import (
	"fmt"
	"regexp"

	"stepcov/internal/domain"
)

// Validator checks a parsed FeatureDocument for structural problems and
// computes document statistics. Problems are collected, never thrown; the
// caller decides severity. In strict mode a scenario missing a Given, When
// or Then among its steps earns a warning (presence only, order is not
// enforced).
type Validator struct {
	Strict bool
}

// NewValidator creates a new Validator.
func NewValidator(strict bool) *Validator {
	return &Validator{Strict: strict}
}

var outlinePlaceholderRe = regexp.MustCompile(`<(\w+)>`)

// Validate runs the validation pass over a finished document.
func (v *Validator) Validate(doc *domain.FeatureDocument) domain.ValidationResult {
	var res domain.ValidationResult

	if doc.Title == "" {
		res.Errors = append(res.Errors, domain.ValidationIssue{Message: "feature has no title"})
	}
	if len(doc.Scenarios) == 0 && len(doc.Outlines) == 0 {
		res.Errors = append(res.Errors, domain.ValidationIssue{Message: "feature has no scenarios"})
	}

	for _, sc := range doc.Scenarios {
		v.checkSteps(&res, sc.Title, sc.Steps, sc.Line)
	}
	for _, ol := range doc.Outlines {
		v.checkSteps(&res, ol.Title, ol.Steps, ol.Line)
		v.checkExamples(&res, ol)
	}

	res.Stats = computeStatistics(doc)
	return res
}

func (v *Validator) checkSteps(res *domain.ValidationResult, title string, steps []domain.Step, line int) {
	if len(steps) == 0 {
		res.Errors = append(res.Errors, domain.ValidationIssue{
			Message: fmt.Sprintf("scenario %q has no steps", title),
			Line:    line,
		})
		return
	}

	seen := make(map[string]bool)
	for _, s := range steps {
		if !domain.ValidKeyword(s.Keyword) {
			res.Errors = append(res.Errors, domain.ValidationIssue{
				Message: fmt.Sprintf("scenario %q: invalid step keyword %q", title, s.Keyword),
				Line:    s.Line,
			})
		}
		seen[s.Keyword] = true
	}

	if v.Strict {
		for _, kw := range []string{domain.KeywordGiven, domain.KeywordWhen, domain.KeywordThen} {
			if !seen[kw] {
				res.Warnings = append(res.Warnings, domain.ValidationIssue{
					Message: fmt.Sprintf("scenario %q has no %s step", title, kw),
					Line:    line,
				})
			}
		}
	}
}

func (v *Validator) checkExamples(res *domain.ValidationResult, ol domain.ScenarioOutline) {
	if len(ol.Examples.Headers) == 0 || len(ol.Examples.Rows) == 0 {
		res.Errors = append(res.Errors, domain.ValidationIssue{
			Message: fmt.Sprintf("scenario outline %q has no examples", ol.Title),
			Line:    ol.Line,
		})
		return
	}

	headers := make(map[string]bool)
	for _, h := range ol.Examples.Headers {
		if headers[h] {
			res.Errors = append(res.Errors, domain.ValidationIssue{
				Message: fmt.Sprintf("scenario outline %q: duplicate examples column %q", ol.Title, h),
				Line:    ol.Examples.Line,
			})
		}
		headers[h] = true
	}

	for i, row := range ol.Examples.Rows {
		if len(row) != len(ol.Examples.Headers) {
			res.Errors = append(res.Errors, domain.ValidationIssue{
				Message: fmt.Sprintf("scenario outline %q: examples row %d has %d cells, expected %d",
					ol.Title, i+1, len(row), len(ol.Examples.Headers)),
				Line: ol.Examples.Line,
			})
		}
	}

	// Placeholders with no matching column are advisory, not fatal.
	referenced := make(map[string]bool)
	for _, s := range ol.Steps {
		for _, m := range outlinePlaceholderRe.FindAllStringSubmatch(s.Text, -1) {
			referenced[m[1]] = true
			if !headers[m[1]] {
				res.Warnings = append(res.Warnings, domain.ValidationIssue{
					Message: fmt.Sprintf("scenario outline %q: placeholder <%s> has no examples column", ol.Title, m[1]),
					Line:    s.Line,
				})
			}
		}
	}
	for _, h := range ol.Examples.Headers {
		if !referenced[h] {
			res.Warnings = append(res.Warnings, domain.ValidationIssue{
				Message: fmt.Sprintf("scenario outline %q: examples column %q is never referenced", ol.Title, h),
				Line:    ol.Examples.Line,
			})
		}
	}
}

func computeStatistics(doc *domain.FeatureDocument) domain.Statistics {
	stats := domain.Statistics{
		Scenarios:      len(doc.Scenarios),
		Outlines:       len(doc.Outlines),
		StepsByKeyword: make(map[string]int),
	}

	count := func(steps []domain.Step) {
		for _, s := range steps {
			stats.TotalSteps++
			stats.StepsByKeyword[s.Keyword]++
		}
	}

	if doc.Background != nil {
		count(doc.Background.Steps)
	}
	sectionSteps := 0
	for _, sc := range doc.Scenarios {
		count(sc.Steps)
		sectionSteps += len(sc.Steps)
	}
	for _, ol := range doc.Outlines {
		count(ol.Steps)
		sectionSteps += len(ol.Steps)
		stats.ExampleRows += len(ol.Examples.Rows)
	}

	if n := stats.Scenarios + stats.Outlines; n > 0 {
		stats.AvgStepsPerScenario = float64(sectionSteps) / float64(n)
	}
	return stats
}
