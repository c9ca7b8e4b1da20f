package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"stepcov/internal/domain"
	"stepcov/internal/pattern"
)

// Extractor pulls step definitions out of step definition source files with
// a lightweight text scan. This is approximate source scraping, not a real
// parser; it stays behind this interface so it can be replaced with a
// tokenizer later without touching the engine.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// callRe locates calls to the three step registration keywords whose first
// argument is a string literal (single, double or backtick quoted).
var callRe = regexp.MustCompile("\\b(Given|When|Then)\\s*\\(\\s*(\"(?:[^\"\\\\]|\\\\.)*\"|'(?:[^'\\\\]|\\\\.)*'|`[^`]*`)")

// stubMarkers flag a registration whose trailing body is a bare
// "not implemented" placeholder.
var stubMarkers = []string{
	"not implemented",
	"notimplemented",
	"pending(",
	"todo: implement",
}

// stubWindow bounds how much trailing body text is inspected per call.
// The window never extends into the next registration, so a stubbed
// neighbor cannot taint an implemented one.
const stubWindow = 240

// ExtractFile reads a step definition file and extracts its definitions.
func (e *Extractor) ExtractFile(path string) ([]domain.StepDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read step file %s: %w", path, err)
	}
	return e.Extract(string(data), path), nil
}

// Extract scans source text for step registration calls and returns the
// definitions in source order.
func (e *Extractor) Extract(source, file string) []domain.StepDefinition {
	var defs []domain.StepDefinition

	locs := callRe.FindAllStringSubmatchIndex(source, -1)
	for i, loc := range locs {
		keyword := source[loc[2]:loc[3]]
		literal := source[loc[4]:loc[5]]
		pat := unquoteLiteral(literal)

		end := loc[1] + stubWindow
		if end > len(source) {
			end = len(source)
		}
		if i+1 < len(locs) && locs[i+1][0] < end {
			end = locs[i+1][0]
		}
		body := strings.ToLower(source[loc[1]:end])

		defs = append(defs, domain.StepDefinition{
			Keyword:     keyword,
			Pattern:     pat,
			File:        file,
			Line:        1 + strings.Count(source[:loc[0]], "\n"),
			Handler:     skeletonName(pat),
			Parameters:  pattern.ParameterNames(pat),
			Implemented: !containsStubMarker(body),
		})
	}
	return defs
}

func containsStubMarker(body string) bool {
	for _, m := range stubMarkers {
		if strings.Contains(body, m) {
			return true
		}
	}
	return false
}

// unquoteLiteral strips the outer quotes of a matched string literal and
// unescapes the quote character it was delimited with.
func unquoteLiteral(lit string) string {
	if len(lit) < 2 {
		return lit
	}
	q := lit[0]
	inner := lit[1 : len(lit)-1]
	switch q {
	case '"':
		inner = strings.ReplaceAll(inner, `\"`, `"`)
	case '\'':
		inner = strings.ReplaceAll(inner, `\'`, `'`)
	}
	return inner
}
