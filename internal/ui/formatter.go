package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"stepcov/internal/config"
	"stepcov/internal/domain"
)

// Formatter renders coverage reports and file lists to the terminal
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintSummary displays the coverage statistics table followed by a tree of
// missing steps grouped by feature file.
func (f *Formatter) PrintSummary(report *domain.CoverageReport) {
	meta := report.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Step Coverage Statistics                    ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	f.printRow("Feature Files", color.White, "%d", meta.FeatureFiles)
	f.printDivider()
	f.printRow("Step Definition Files", color.White, "%d", meta.StepFiles)
	f.printDivider()
	f.printRow("Step Usages", color.White, "%d", meta.TotalUsages)
	f.printDivider()
	f.printRow("Covered Usages", color.Green, "%d", meta.CoveredUsages)
	f.printDivider()
	f.printRow("Missing Steps", color.Red, "%d", len(report.Missing))
	f.printDivider()
	f.printRow("Unused Definitions", color.Yellow, "%d", len(report.Unused))
	f.printDivider()
	f.printRow("Coverage", coverageColor(report.Coverage), "%.1f%%", report.Coverage)
	f.printDivider()
	f.printRow("Implementation", coverageColor(report.Implementation), "%.1f%%", report.Implementation)
	f.printDivider()
	f.printRow("Duration", color.White, "%.2fs", meta.DurationSeconds)
	f.printDivider()
	f.printRow("Timestamp", color.White, "%s", meta.Timestamp)
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	f.printKeywordDistribution(report.UsageByKeyword)

	fmt.Println()
	if len(report.Missing) == 0 && len(report.Unused) == 0 {
		color.Green("✓ Every step usage is covered and every definition is used!")
		return
	}
	if len(report.Missing) > 0 {
		color.Red("✗ %d step usage(s) have no matching definition", len(report.Missing))
		fmt.Println()
		f.printMissingTree(report.Missing)
	}
	if len(report.Unused) > 0 {
		fmt.Println()
		color.Yellow("! %d step definition(s) are never used", len(report.Unused))
	}
}

func (f *Formatter) printRow(label string, c func(format string, a ...interface{}), format string, v any) {
	fmt.Printf("│ %-31s │ ", label)
	c("%-27s │\n", fmt.Sprintf(format, v))
}

func (f *Formatter) printDivider() {
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
}

func coverageColor(pct float64) func(format string, a ...interface{}) {
	switch {
	case pct >= 100:
		return color.Green
	case pct >= 75:
		return color.Yellow
	default:
		return color.Red
	}
}

func (f *Formatter) printKeywordDistribution(byKeyword map[string]int) {
	if len(byKeyword) == 0 {
		return
	}
	var parts []string
	for _, kw := range domain.StepKeywords {
		if n, ok := byKeyword[kw]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", kw, n))
		}
	}
	fmt.Println()
	color.Cyan("  Steps by keyword: %s", strings.Join(parts, " | "))
}

// treeNode represents a node in the feature file tree
type treeNode struct {
	name     string
	children map[string]*treeNode
	missing  []domain.MissingStep
	isFile   bool
}

// printMissingTree prints missing steps as a tree grouped by feature file.
func (f *Formatter) printMissingTree(missing []domain.MissingStep) {
	fileMap := make(map[string][]domain.MissingStep)
	for _, m := range missing {
		fileMap[m.Usage.FeatureFile] = append(fileMap[m.Usage.FeatureFile], m)
	}

	root := &treeNode{children: make(map[string]*treeNode)}
	for filePath, steps := range fileMap {
		parts := strings.Split(strings.TrimPrefix(filePath, "./"), "/")
		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			if current.children[part] == nil {
				current.children[part] = &treeNode{
					name:     part,
					children: make(map[string]*treeNode),
					isFile:   i == len(parts)-1,
				}
			}
			current = current.children[part]
			if i == len(parts)-1 {
				current.missing = steps
			}
		}
	}

	f.printTreeNode(root, "", true)
}

func (f *Formatter) printTreeNode(node *treeNode, prefix string, isRoot bool) {
	var keys []string
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.children[key]
		isLastChild := i == len(keys)-1

		var connector string
		if isRoot {
			connector = "  "
		} else if isLastChild {
			connector = prefix + "  └─"
		} else {
			connector = prefix + "  ├─"
		}

		if child.isFile {
			color.Yellow("%s%s", connector, child.name)
			for j, m := range child.missing {
				mark := "├─"
				if j == len(child.missing)-1 {
					mark = "└─"
				}
				color.Red("%s    %s L%d %s %s", prefix, mark, m.Usage.Line, m.Usage.Keyword, m.Usage.Text)
			}
		} else {
			color.Cyan("%s%s", connector, child.name)
		}

		newPrefix := prefix + "  "
		if !isRoot && !isLastChild {
			newPrefix = prefix + "  │"
		}
		f.printTreeNode(child, newPrefix, false)
	}
}

// PrintDetails lists every missing and unused entry with provenance and the
// suggested pattern for each gap.
func (f *Formatter) PrintDetails(report *domain.CoverageReport) {
	if len(report.Missing) > 0 {
		color.Red("\nMissing steps:")
		for _, m := range report.Missing {
			fmt.Printf("  %s:%d\n", m.Usage.FeatureFile, m.Usage.Line)
			fmt.Printf("    %s %s\n", m.Usage.Keyword, m.Usage.Text)
			color.Cyan("    suggested: %s", m.SuggestedPattern)
		}
	}
	if len(report.Unused) > 0 {
		color.Yellow("\nUnused definitions:")
		for _, u := range report.Unused {
			d := u.Definition
			fmt.Printf("  %s:%d\n", d.File, d.Line)
			fmt.Printf("    %s %s\n", d.Keyword, d.Pattern)
			if !d.Implemented {
				color.Red("    declared but not implemented")
			}
		}
	}
}

// PrintValidation displays per-file validation findings.
func (f *Formatter) PrintValidation(results []domain.FileValidation) {
	for _, r := range results {
		if len(r.Errors) == 0 && len(r.Warnings) == 0 {
			continue
		}
		color.Cyan("\n%s", r.File)
		for _, e := range r.Errors {
			if e.Line > 0 {
				color.Red("  error L%d: %s", e.Line, e.Message)
			} else {
				color.Red("  error: %s", e.Message)
			}
		}
		for _, w := range r.Warnings {
			if w.Line > 0 {
				color.Yellow("  warning L%d: %s", w.Line, w.Message)
			} else {
				color.Yellow("  warning: %s", w.Message)
			}
		}
	}
}

// PrintFileList displays discovered files, one per line.
func (f *Formatter) PrintFileList(files []string) {
	for _, file := range files {
		fmt.Println(file)
	}
	fmt.Println()
	color.Cyan("%d file(s)", len(files))
}

// PrintDefinitions displays extracted step definitions with location and
// implementation status.
func (f *Formatter) PrintDefinitions(defs []domain.StepDefinition) {
	for _, d := range defs {
		status := color.GreenString("implemented")
		if !d.Implemented {
			status = color.RedString("stub")
		}
		fmt.Printf("%s:%d  %s %q  [%s]\n", d.File, d.Line, d.Keyword, d.Pattern, status)
	}
	fmt.Println()
	color.Cyan("%d definition(s)", len(defs))
}

// PrintHistory displays past coverage runs, most recent first.
func (f *Formatter) PrintHistory(runs []domain.RunRecord) {
	if len(runs) == 0 {
		color.Yellow("No recorded coverage runs")
		return
	}
	fmt.Printf("%-25s %8s %8s %8s %8s %10s\n", "TIMESTAMP", "USAGES", "COVERED", "MISSING", "UNUSED", "COVERAGE")
	for _, r := range runs {
		line := fmt.Sprintf("%-25s %8d %8d %8d %8d %9.1f%%",
			r.Timestamp, r.TotalUsages, r.CoveredUsages, r.Missing, r.Unused, r.Coverage)
		if r.Coverage >= 100 {
			color.Green("%s", line)
		} else {
			fmt.Println(line)
		}
	}
}
