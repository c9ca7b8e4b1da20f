package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"stepcov/internal/config"
	"stepcov/internal/discovery"
	"stepcov/internal/domain"
	"stepcov/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	extractor *discovery.Extractor
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	extractor *discovery.Extractor,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		extractor: extractor,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	if lc.config.Flags.Steps {
		return lc.listDefinitions()
	}

	files, err := lc.scanner.Scan(lc.config.ProjectPath, lc.config.GetFeatureDirs(), lc.config.FeatureGlobs)
	if err != nil {
		return err
	}
	files = lc.filter.FilterByName(files, lc.config.Flags.NameFilter)

	if len(files) == 0 {
		color.Yellow("No feature files found")
		return nil
	}
	lc.formatter.PrintFileList(files)
	return nil
}

// listDefinitions scans step definition files and lists the definitions
// extracted from them.
func (lc *ListCommand) listDefinitions() error {
	files, err := lc.scanner.Scan(lc.config.ProjectPath, lc.config.GetStepDirs(), lc.config.StepGlobs)
	if err != nil {
		return err
	}
	files = lc.filter.FilterByName(files, lc.config.Flags.NameFilter)

	var defs []domain.StepDefinition
	for _, file := range files {
		// A file that cannot be read is skipped, same as during discovery.
		fileDefs, err := lc.extractor.ExtractFile(file)
		if err != nil {
			continue
		}
		defs = append(defs, fileDefs...)
	}

	if len(defs) == 0 {
		color.Yellow("No step definitions found")
		return nil
	}
	lc.formatter.PrintDefinitions(defs)
	return nil
}
