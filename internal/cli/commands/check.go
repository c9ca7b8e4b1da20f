package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"stepcov/internal/config"
	"stepcov/internal/discovery"
	"stepcov/internal/gherkin"
	"stepcov/internal/storage"
	"stepcov/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CheckCommand handles the check command
type CheckCommand struct {
	config    *config.Config
	engine    *discovery.Engine
	validator *gherkin.Validator
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(
	cfg *config.Config,
	engine *discovery.Engine,
	validator *gherkin.Validator,
	st storage.Storage,
	formatter *ui.Formatter,
) *CheckCommand {
	return &CheckCommand{
		config:    cfg,
		engine:    engine,
		validator: validator,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	cc.validator.Strict = cc.config.Strict
	if !cc.config.Flags.JSON {
		cc.engine.SetProgressFactory(ui.NewProgressBar)
	}

	report, err := cc.engine.Discover()
	if err != nil {
		return err
	}

	// Save the report so browse and generate can reuse it
	if err := cc.storage.Save(report); err != nil {
		return fmt.Errorf("failed to save coverage report: %w", err)
	}

	// Record the run in the coverage history
	if history, err := storage.OpenHistory(cc.config.GetHistoryPath()); err == nil {
		if err := history.Append(report); err != nil {
			color.Yellow("could not record history: %v", err)
		}
		history.Close()
	}

	if cc.config.Flags.JSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(data))
	} else {
		cc.formatter.PrintSummary(report)
		if len(report.Validation) > 0 {
			cc.formatter.PrintValidation(report.Validation)
		}
		if cc.config.Flags.Details {
			cc.formatter.PrintDetails(report)
		}
	}

	if min := cc.config.Flags.FailUnder; min > 0 && report.Coverage < min {
		fmt.Println()
		color.Red("coverage %.1f%% is below --fail-under %.1f%%", report.Coverage, min)
		os.Exit(1)
	}
	return nil
}
