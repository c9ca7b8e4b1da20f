package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"stepcov/internal/config"
	"stepcov/internal/discovery"
	"stepcov/internal/domain"
	"stepcov/internal/gherkin"
	"stepcov/internal/ui"
)

// ValidateCommand handles the validate command
type ValidateCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	parser    *gherkin.Parser
	validator *gherkin.Validator
	formatter *ui.Formatter
}

// NewValidateCommand creates a new ValidateCommand
func NewValidateCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	parser *gherkin.Parser,
	validator *gherkin.Validator,
	formatter *ui.Formatter,
) *ValidateCommand {
	return &ValidateCommand{
		config:    cfg,
		scanner:   scanner,
		parser:    parser,
		validator: validator,
		formatter: formatter,
	}
}

// Execute runs the command
func (vc *ValidateCommand) Execute(cmd *cobra.Command, args []string) error {
	vc.validator.Strict = vc.config.Strict

	files, err := vc.scanner.Scan(vc.config.ProjectPath, vc.config.GetFeatureDirs(), vc.config.FeatureGlobs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No feature files found")
		return nil
	}

	var results []domain.FileValidation
	errorCount := 0
	warningCount := 0
	for _, file := range files {
		doc, err := vc.parser.ParseFile(file)
		if err != nil {
			results = append(results, domain.FileValidation{
				File:   file,
				Errors: []domain.ValidationIssue{{Message: err.Error()}},
			})
			errorCount++
			continue
		}
		res := vc.validator.Validate(doc)
		errorCount += len(res.Errors)
		warningCount += len(res.Warnings)
		results = append(results, domain.FileValidation{
			File:     file,
			Errors:   res.Errors,
			Warnings: res.Warnings,
		})
	}

	vc.formatter.PrintValidation(results)

	fmt.Println()
	if errorCount == 0 {
		color.Green("✓ %d feature file(s) valid (%d warning(s))", len(files), warningCount)
		return nil
	}
	return fmt.Errorf("%d validation error(s) in %d file(s)", errorCount, len(files))
}
