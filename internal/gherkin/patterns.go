package gherkin

import (
	"stepcov/internal/domain"
	"stepcov/internal/pattern"
)

// StepPattern is one deduplicated (keyword, parameterized pattern) pair
// extracted from a feature document.
type StepPattern struct {
	Keyword string
	Pattern string
}

// ExtractStepPatterns returns the deduplicated set of (keyword, pattern)
// pairs across background, scenarios and outlines, in first-occurrence
// order. Each step's literal text is parameterized, so equal steps that
// differ only in literal values collapse into one pattern.
func ExtractStepPatterns(doc *domain.FeatureDocument) []StepPattern {
	var out []StepPattern
	seen := make(map[StepPattern]bool)

	add := func(steps []domain.Step) {
		for _, s := range steps {
			sp := StepPattern{Keyword: s.Keyword, Pattern: pattern.Parameterize(s.Text)}
			if !seen[sp] {
				seen[sp] = true
				out = append(out, sp)
			}
		}
	}

	if doc.Background != nil {
		add(doc.Background.Steps)
	}
	for _, sc := range doc.Scenarios {
		add(sc.Steps)
	}
	for _, ol := range doc.Outlines {
		add(ol.Steps)
	}
	return out
}
