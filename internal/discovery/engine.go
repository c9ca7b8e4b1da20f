// Package discovery scans a project for feature files and step definition
// files, correlates declared steps against used steps and aggregates the
// result into a coverage report.
package discovery

import (
	"path/filepath"
	"time"

	"stepcov/internal/config"
	"stepcov/internal/domain"
	"stepcov/internal/gherkin"
	"stepcov/internal/pattern"
	"stepcov/internal/registry"
	"stepcov/internal/ui"
)

// Engine orchestrates a discovery run: scan, per-file parse/extract fan-out
// and the final correlation reduction.
type Engine struct {
	cfg       *config.Config
	scanner   *Scanner
	extractor *Extractor
	parser    *gherkin.Parser
	validator *gherkin.Validator
	generator *Generator

	reg        *registry.Registry
	progressFn func(total int) *ui.ProgressBar
}

// NewEngine creates a new Engine.
func NewEngine(
	cfg *config.Config,
	scanner *Scanner,
	extractor *Extractor,
	parser *gherkin.Parser,
	validator *gherkin.Validator,
	generator *Generator,
) *Engine {
	return &Engine{
		cfg:       cfg,
		scanner:   scanner,
		extractor: extractor,
		parser:    parser,
		validator: validator,
		generator: generator,
	}
}

// SetRegistry adds a live registry as a secondary source of declared
// patterns, equivalent to what the extractor finds in files.
func (e *Engine) SetRegistry(r *registry.Registry) {
	e.reg = r
}

// SetProgressFactory installs a progress bar constructor, called once the
// number of files to process is known.
func (e *Engine) SetProgressFactory(fn func(total int) *ui.ProgressBar) {
	e.progressFn = fn
}

// Discover runs the full analysis and returns the coverage report. An
// unreadable individual file is skipped and counted, never aborting the
// scan; validation findings of files that do parse are preserved in the
// report.
func (e *Engine) Discover() (*domain.CoverageReport, error) {
	start := time.Now()
	root := e.cfg.ProjectPath

	featureFiles, err := e.scanner.Scan(root, e.cfg.GetFeatureDirs(), e.cfg.FeatureGlobs)
	if err != nil {
		return nil, err
	}
	stepFiles, err := e.scanner.Scan(root, e.cfg.GetStepDirs(), e.cfg.StepGlobs)
	if err != nil {
		return nil, err
	}

	isFeature := make(map[string]bool, len(featureFiles))
	for _, f := range featureFiles {
		isFeature[f] = true
	}
	paths := append(append([]string(nil), stepFiles...), featureFiles...)

	var progress *ui.ProgressBar
	if e.progressFn != nil && len(paths) > 0 {
		progress = e.progressFn(len(paths))
	}

	results := runParallel(paths, e.cfg.Workers, progress, func(path string) parseResult {
		if isFeature[path] {
			return e.parseFeature(path)
		}
		return e.extractSteps(path)
	})
	if progress != nil {
		progress.Finish()
	}

	// Final reduction: merge per-file results, then correlate.
	var defs []domain.StepDefinition
	var usages []domain.StepUsage
	var validations []domain.FileValidation
	skipped := 0
	for _, r := range results {
		if r.err != nil {
			skipped++
			continue
		}
		defs = append(defs, r.definitions...)
		if r.doc != nil {
			usages = append(usages, flattenUsages(r.doc, root)...)
			if len(r.validation.Errors) > 0 || len(r.validation.Warnings) > 0 {
				validations = append(validations, domain.FileValidation{
					File:     relPath(root, r.path),
					Errors:   r.validation.Errors,
					Warnings: r.validation.Warnings,
				})
			}
		}
	}

	if e.reg != nil {
		defs = append(defs, e.reg.Definitions()...)
	}
	defs = dedupeDefinitions(defs)

	report := e.correlate(usages, defs)
	report.Validation = validations
	report.Meta.FeatureFiles = len(featureFiles)
	report.Meta.StepFiles = len(stepFiles)
	report.Meta.SkippedFiles = skipped
	report.Meta.Workers = e.cfg.Workers
	report.Meta.Duration = time.Since(start).String()
	report.Meta.DurationSeconds = time.Since(start).Seconds()
	report.Meta.Timestamp = time.Now().Format(time.RFC3339)
	return report, nil
}

func (e *Engine) parseFeature(path string) parseResult {
	doc, err := e.parser.ParseFile(path)
	if err != nil {
		return parseResult{path: path, err: err}
	}
	res := e.validator.Validate(doc)
	return parseResult{path: path, doc: doc, validation: &res}
}

func (e *Engine) extractSteps(path string) parseResult {
	defs, err := e.extractor.ExtractFile(path)
	if err != nil {
		return parseResult{path: path, err: err}
	}
	return parseResult{path: path, definitions: defs}
}

// correlate tests every usage against every definition with a matching
// keyword, using the same anchored pattern contract as live matching.
// First match wins; a usage with no match is missing, a definition matched
// by no usage is unused.
func (e *Engine) correlate(usages []domain.StepUsage, defs []domain.StepDefinition) *domain.CoverageReport {
	matchers := make([]*pattern.Matcher, len(defs))
	for i, d := range defs {
		matchers[i] = pattern.Compile(d.Pattern)
	}

	matched := make(map[string]bool)
	byKeyword := make(map[string]int)
	var missing []domain.MissingStep
	covered := 0

	for _, u := range usages {
		byKeyword[u.Keyword]++
		found := false
		for i, d := range defs {
			if !keywordMatches(u.Keyword, d.Keyword) {
				continue
			}
			if matchers[i].Match(u.Text) {
				matched[d.Key()] = true
				found = true
				break
			}
		}
		if found {
			covered++
			continue
		}
		suggested := pattern.Parameterize(u.Text)
		missing = append(missing, domain.MissingStep{
			Usage:            u,
			SuggestedPattern: suggested,
			Skeleton:         e.generator.Skeleton(u.Keyword, suggested, u.Text),
		})
	}

	var unused []domain.UnusedDefinition
	implemented := 0
	for _, d := range defs {
		if d.Implemented {
			implemented++
		}
		if !matched[d.Key()] {
			unused = append(unused, domain.UnusedDefinition{Definition: d})
		}
	}

	report := &domain.CoverageReport{
		Coverage:       percentage(covered, len(usages)),
		Implementation: percentage(implemented, len(defs)),
		Missing:        missing,
		Unused:         unused,
		Definitions:    defs,
		Usages:         usages,
		UsageByKeyword: byKeyword,
	}
	report.Meta.TotalUsages = len(usages)
	report.Meta.CoveredUsages = covered
	report.Meta.TotalDefs = len(defs)
	report.Meta.ImplementedDefs = implemented
	return report
}

// keywordMatches applies the matching contract for keywords: And and But
// usages match definitions under any keyword, otherwise keywords must be
// equal.
func keywordMatches(usageKw, defKw string) bool {
	if usageKw == domain.KeywordAnd || usageKw == domain.KeywordBut {
		return true
	}
	return usageKw == defKw
}

// percentage returns covered/total as a percentage bounded to [0,100],
// treating an empty denominator as fully covered rather than as failure.
func percentage(part, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(part) / float64(total) * 100
}

// flattenUsages turns every step of a parsed document into a usage record
// with feature and scenario provenance.
func flattenUsages(doc *domain.FeatureDocument, root string) []domain.StepUsage {
	file := relPath(root, doc.SourceFile)
	var out []domain.StepUsage

	add := func(scenario string, steps []domain.Step) {
		for _, s := range steps {
			out = append(out, domain.StepUsage{
				Keyword:     s.Keyword,
				Text:        s.Text,
				FeatureFile: file,
				Feature:     doc.Title,
				Scenario:    scenario,
				Line:        s.Line,
			})
		}
	}

	if doc.Background != nil {
		add("Background", doc.Background.Steps)
	}
	for _, sc := range doc.Scenarios {
		add(sc.Title, sc.Steps)
	}
	for _, ol := range doc.Outlines {
		add(ol.Title, ol.Steps)
	}
	return out
}

// dedupeDefinitions keeps the first definition per (keyword, pattern) key,
// preserving order.
func dedupeDefinitions(defs []domain.StepDefinition) []domain.StepDefinition {
	seen := make(map[string]bool, len(defs))
	out := defs[:0:0]
	for _, d := range defs {
		if seen[d.Key()] {
			continue
		}
		seen[d.Key()] = true
		out = append(out, d)
	}
	return out
}

func relPath(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil && !filepath.IsAbs(rel) {
		return rel
	}
	return path
}
