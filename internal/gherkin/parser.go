// Package gherkin parses a subset of the Gherkin language into structured
// feature documents and validates them.
package gherkin

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"stepcov/internal/domain"
)

// Parser turns raw feature file text into a FeatureDocument. Parsing is
// best effort: structurally misplaced lines are classified as well as
// possible and any resulting gaps surface later through validation.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

var stepLineRe = regexp.MustCompile(`^(Given|When|Then|And|But)\s+(.+)$`)

// parser modes; exactly one is active outside doc-string capture.
const (
	modeFeatureHeader = iota
	modeBackground
	modeScenario
	modeOutline
	modeExamples
)

// sectionBuilder accumulates the scenario or outline currently being parsed.
type sectionBuilder struct {
	title    string
	tags     []string
	steps    []domain.Step
	line     int
	outline  bool
	examples domain.ExamplesTable
}

type parseState struct {
	doc         *domain.FeatureDocument
	mode        int
	pendingTags []string
	background  *domain.Background
	cur         *sectionBuilder
	descLines   []string

	// doc-string capture; suspends normal classification while active
	docStringOpen bool
	docStringLang string
	docStringPad  string
	docStringBuf  []string
}

// ParseFile reads and parses a feature file.
func (p *Parser) ParseFile(path string) (*domain.FeatureDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feature file %s: %w", path, err)
	}
	return p.Parse(string(data), path), nil
}

// Parse parses feature source text. The sourceFile is recorded as metadata
// only. Parse always produces a document; its completeness is judged by the
// validator, not here.
func (p *Parser) Parse(source, sourceFile string) *domain.FeatureDocument {
	st := &parseState{
		doc: &domain.FeatureDocument{SourceFile: sourceFile},
	}

	lines := strings.Split(source, "\n")
	for i, raw := range lines {
		st.classify(raw, i+1)
	}

	// Unterminated doc string: keep what was captured.
	if st.docStringOpen {
		st.closeDocString()
	}
	st.flushSection()

	st.doc.Background = st.background
	st.doc.Description = strings.TrimSpace(strings.Join(st.descLines, "\n"))
	st.doc.LineCount = len(lines)
	return st.doc
}

// classify applies the per-line classification order: doc-string fence,
// doc-string content, blank/comment, tags, section headers, steps, table
// rows, then feature description.
func (st *parseState) classify(raw string, lineNo int) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "```") {
		st.toggleDocString(raw, trimmed)
		return
	}
	if st.docStringOpen {
		st.docStringBuf = append(st.docStringBuf, strings.TrimPrefix(raw, st.docStringPad))
		return
	}
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}
	if strings.HasPrefix(trimmed, "@") {
		st.collectTags(trimmed)
		return
	}
	switch {
	case strings.HasPrefix(trimmed, "Feature:"):
		st.doc.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "Feature:"))
		// Tags above the Feature: line are feature-level, not scenario-level.
		st.doc.Tags = append(st.doc.Tags, st.pendingTags...)
		st.pendingTags = nil
		st.mode = modeFeatureHeader
	case strings.HasPrefix(trimmed, "Background:"):
		st.flushSection()
		st.background = &domain.Background{Line: lineNo}
		st.mode = modeBackground
	case strings.HasPrefix(trimmed, "Scenario Outline:"):
		st.openSection(strings.TrimSpace(strings.TrimPrefix(trimmed, "Scenario Outline:")), lineNo, true)
	case strings.HasPrefix(trimmed, "Scenario:"):
		st.openSection(strings.TrimSpace(strings.TrimPrefix(trimmed, "Scenario:")), lineNo, false)
	case strings.HasPrefix(trimmed, "Examples:"):
		if st.cur != nil && st.cur.outline {
			st.cur.examples.Line = lineNo
			st.mode = modeExamples
		}
	case stepLineRe.MatchString(trimmed):
		m := stepLineRe.FindStringSubmatch(trimmed)
		st.addStep(domain.Step{Keyword: m[1], Text: strings.TrimSpace(m[2]), Line: lineNo})
	case strings.HasPrefix(trimmed, "|"):
		st.addTableRow(parseTableRow(trimmed))
	case st.mode == modeFeatureHeader && st.doc.Title != "":
		st.descLines = append(st.descLines, trimmed)
	}
}

func (st *parseState) toggleDocString(raw, trimmed string) {
	if st.docStringOpen {
		st.closeDocString()
		return
	}
	st.docStringOpen = true
	st.docStringLang = strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	st.docStringPad = raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]
	st.docStringBuf = nil
}

func (st *parseState) closeDocString() {
	ds := &domain.DocString{
		Language: st.docStringLang,
		Content:  strings.Join(st.docStringBuf, "\n"),
	}
	if step := st.lastStep(); step != nil {
		step.DocString = ds
	}
	st.docStringOpen = false
	st.docStringBuf = nil
}

func (st *parseState) collectTags(trimmed string) {
	for _, f := range strings.Fields(trimmed) {
		if strings.HasPrefix(f, "@") && len(f) > 1 {
			st.pendingTags = append(st.pendingTags, strings.TrimPrefix(f, "@"))
		}
	}
}

func (st *parseState) openSection(title string, lineNo int, outline bool) {
	st.flushSection()
	st.cur = &sectionBuilder{
		title:   title,
		tags:    st.pendingTags,
		line:    lineNo,
		outline: outline,
	}
	st.pendingTags = nil
	if outline {
		st.mode = modeOutline
	} else {
		st.mode = modeScenario
	}
}

// flushSection appends the in-progress scenario or outline to the document.
func (st *parseState) flushSection() {
	if st.cur == nil {
		return
	}
	if st.cur.outline {
		st.doc.Outlines = append(st.doc.Outlines, domain.ScenarioOutline{
			Title:    st.cur.title,
			Steps:    st.cur.steps,
			Tags:     st.cur.tags,
			Examples: st.cur.examples,
			Line:     st.cur.line,
		})
	} else {
		st.doc.Scenarios = append(st.doc.Scenarios, domain.Scenario{
			Title: st.cur.title,
			Steps: st.cur.steps,
			Tags:  st.cur.tags,
			Line:  st.cur.line,
		})
	}
	st.cur = nil
}

func (st *parseState) addStep(step domain.Step) {
	switch st.mode {
	case modeBackground:
		if st.background != nil {
			st.background.Steps = append(st.background.Steps, step)
		}
	case modeScenario, modeOutline, modeExamples:
		if st.cur != nil {
			st.cur.steps = append(st.cur.steps, step)
			if st.mode == modeExamples {
				st.mode = modeOutline
			}
		}
	default:
		// Step before any section: tolerated, dropped. The document stays
		// incomplete and validation reports it.
	}
}

// addTableRow attaches a pipe row either to the current Examples table or
// to the most recently opened step.
func (st *parseState) addTableRow(cells []string) {
	if st.mode == modeExamples && st.cur != nil {
		if st.cur.examples.Headers == nil {
			st.cur.examples.Headers = cells
		} else {
			st.cur.examples.Rows = append(st.cur.examples.Rows, cells)
		}
		return
	}
	if step := st.lastStep(); step != nil {
		step.Table = append(step.Table, cells)
	}
}

// lastStep returns the most recently opened step in the active section.
func (st *parseState) lastStep() *domain.Step {
	if st.mode == modeBackground && st.background != nil && len(st.background.Steps) > 0 {
		return &st.background.Steps[len(st.background.Steps)-1]
	}
	if st.cur != nil && len(st.cur.steps) > 0 {
		return &st.cur.steps[len(st.cur.steps)-1]
	}
	return nil
}

// parseTableRow splits a "| a | b |" line into trimmed cell values.
func parseTableRow(trimmed string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "|"), "|")
	parts := strings.Split(inner, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
