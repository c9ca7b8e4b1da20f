package domain

// Step keywords recognized in feature files.
const (
	KeywordGiven = "Given"
	KeywordWhen  = "When"
	KeywordThen  = "Then"
	KeywordAnd   = "And"
	KeywordBut   = "But"
)

// StepKeywords lists all valid step keywords in canonical order.
var StepKeywords = []string{KeywordGiven, KeywordWhen, KeywordThen, KeywordAnd, KeywordBut}

// ValidKeyword reports whether kw is one of the five step keywords.
func ValidKeyword(kw string) bool {
	for _, k := range StepKeywords {
		if k == kw {
			return true
		}
	}
	return false
}

// FeatureDocument is the parsed representation of a single .feature file.
type FeatureDocument struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Background  *Background       `json:"background,omitempty"`
	Scenarios   []Scenario        `json:"scenarios"`
	Outlines    []ScenarioOutline `json:"outlines,omitempty"`
	SourceFile  string            `json:"source_file,omitempty"`
	LineCount   int               `json:"line_count"`
}

// Background holds steps shared by every scenario in a feature.
type Background struct {
	Steps []Step `json:"steps"`
	Line  int    `json:"line"`
}

// Scenario is a single named scenario with its steps and tags.
type Scenario struct {
	Title string   `json:"title"`
	Steps []Step   `json:"steps"`
	Tags  []string `json:"tags,omitempty"`
	Line  int      `json:"line"`
}

// ScenarioOutline is a templated scenario with an examples table.
type ScenarioOutline struct {
	Title    string        `json:"title"`
	Steps    []Step        `json:"steps"`
	Tags     []string      `json:"tags,omitempty"`
	Examples ExamplesTable `json:"examples"`
	Line     int           `json:"line"`
}

// ExamplesTable holds the header row and data rows of an Examples section.
type ExamplesTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Line    int        `json:"line"`
}

// Step is a single Given/When/Then/And/But line with optional arguments.
type Step struct {
	Keyword   string     `json:"keyword"`
	Text      string     `json:"text"`
	Table     [][]string `json:"table,omitempty"`
	DocString *DocString `json:"doc_string,omitempty"`
	Line      int        `json:"line"`
}

// DocString is a fenced multi-line string attached to a step.
type DocString struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}
