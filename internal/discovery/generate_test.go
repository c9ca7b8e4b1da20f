package discovery

import (
	"strings"
	"testing"

	"stepcov/internal/domain"
)

func TestSkeletonName(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"I have 2 apples", "i_have_2_apples"},
		{`I add "3" apples`, "i_add_3_apples"},
		{"I click the Submit button!", "i_click_the_submit_button"},
		{"   spaced   out   ", "spaced_out"},
		{"???", "step"},
		{
			"a very long step text that keeps going and going well past the limit",
			"a_very_long_step_text_that_keeps_going_and_going",
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := skeletonName(tt.text)
			if got != tt.expected {
				t.Errorf("skeletonName(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
			if len(got) > maxSkeletonName {
				t.Errorf("name %q exceeds the length bound", got)
			}
		})
	}
}

func TestGenerator_Skeleton(t *testing.T) {
	g := NewGenerator()
	out := g.Skeleton("Given", "I have {int} apples", "I have 2 apples")

	if !strings.Contains(out, "func i_have_2_apples(w harness.Wrapper, args registry.Args) error") {
		t.Errorf("skeleton missing handler signature:\n%s", out)
	}
	if !strings.Contains(out, `registry.Pending("I have 2 apples")`) {
		t.Errorf("skeleton missing pending return:\n%s", out)
	}
}

func missingFixture() []domain.MissingStep {
	return []domain.MissingStep{
		{
			Usage:            domain.StepUsage{Keyword: "Given", Text: "I have 2 apples", FeatureFile: "features/cart.feature"},
			SuggestedPattern: "I have {int} apples",
		},
		{
			Usage:            domain.StepUsage{Keyword: "Given", Text: "I have 9 apples", FeatureFile: "features/cart.feature"},
			SuggestedPattern: "I have {int} apples",
		},
		{
			Usage:            domain.StepUsage{Keyword: "And", Text: "the total is 11", FeatureFile: "features/checkout.feature"},
			SuggestedPattern: "the total is {int}",
		},
	}
}

func TestGenerator_Render(t *testing.T) {
	out := NewGenerator().Render(missingFixture(), true)

	// duplicate (keyword, pattern) suggestions collapse into one stub
	if strings.Count(out, "func i_have_") != 1 {
		t.Errorf("expected one stub for the duplicated pattern:\n%s", out)
	}
	if !strings.Contains(out, "// features/cart.feature") {
		t.Errorf("expected grouping comment for cart.feature:\n%s", out)
	}
	if !strings.Contains(out, "// features/checkout.feature") {
		t.Errorf("expected grouping comment for checkout.feature:\n%s", out)
	}
	if !strings.Contains(out, "func registerMissingSteps(r *registry.Registry)") {
		t.Errorf("expected registration function:\n%s", out)
	}
	if !strings.Contains(out, `r.MustRegister("Given", "I have {int} apples", i_have_2_apples)`) {
		t.Errorf("expected registration line:\n%s", out)
	}
	// And usages register under Given
	if !strings.Contains(out, `r.MustRegister("Given", "the total is {int}", the_total_is_11)`) {
		t.Errorf("expected And usage registered under Given:\n%s", out)
	}
}

func TestGenerator_Render_Flat(t *testing.T) {
	out := NewGenerator().Render(missingFixture(), false)
	if strings.Contains(out, "// features/") {
		t.Errorf("flat output must not contain grouping comments:\n%s", out)
	}
}

func TestGenerator_Render_NameCollision(t *testing.T) {
	missing := []domain.MissingStep{
		{
			Usage:            domain.StepUsage{Keyword: "Given", Text: `I see "a"`, FeatureFile: "f.feature"},
			SuggestedPattern: "I see {string}",
		},
		{
			Usage:            domain.StepUsage{Keyword: "When", Text: `I see "a"`, FeatureFile: "f.feature"},
			SuggestedPattern: "I see {string}",
		},
	}
	out := NewGenerator().Render(missing, false)
	if !strings.Contains(out, "func i_see_a(") || !strings.Contains(out, "func i_see_a_2(") {
		t.Errorf("expected numeric suffix on colliding handler names:\n%s", out)
	}
}

func TestGenerator_Render_Empty(t *testing.T) {
	if out := NewGenerator().Render(nil, true); out != "" {
		t.Errorf("expected empty output for no missing steps, got:\n%s", out)
	}
}
