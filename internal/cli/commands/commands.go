package commands

import (
	"stepcov/internal/cli"
	"stepcov/internal/config"
	"stepcov/internal/discovery"
	"stepcov/internal/gherkin"
	"stepcov/internal/storage"
	"stepcov/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Check    *CheckCommand
	List     *ListCommand
	Validate *ValidateCommand
	Generate *GenerateCommand
	Browse   *BrowseCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.SkipDirs)
	filter := discovery.NewFilter()
	extractor := discovery.NewExtractor()
	parser := gherkin.NewParser()
	validator := gherkin.NewValidator(cfg.Strict)
	generator := discovery.NewGenerator()
	engine := discovery.NewEngine(cfg, scanner, extractor, parser, validator, generator)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	gapViewer := ui.NewGapViewer(cfg, jsonStorage)

	return &Commands{
		Check:    NewCheckCommand(cfg, engine, validator, jsonStorage, formatter),
		List:     NewListCommand(cfg, scanner, filter, extractor, formatter),
		Validate: NewValidateCommand(cfg, scanner, parser, validator, formatter),
		Generate: NewGenerateCommand(cfg, engine, generator),
		Browse:   NewBrowseCommand(cfg, jsonStorage, gapViewer),
		History:  NewHistoryCommand(cfg, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		if flags.ProjectPath != "" {
			cfg.ProjectPath = flags.ProjectPath
		}
		cfg.ApplyEnv()
		if flags.Workers > 0 {
			cfg.Workers = flags.Workers
		}
		if flags.Strict {
			cfg.Strict = true
		}
		return nil
	}

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check",
		Short:   "Analyze step coverage",
		Long:    "Scan feature files and step definitions, correlate them and report missing and unused steps",
		RunE:    c.Check.Execute,
		PreRunE: applyFlags,
	}
	checkCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 4, "Number of parse workers to use")
	checkCmd.Flags().StringVarP(&flags.FeaturePath, "feature-path", "f", "", "Directory to scan for feature files (overrides conventional locations)")
	checkCmd.Flags().StringVarP(&flags.StepPath, "step-path", "s", "", "Directory to scan for step definition files")
	checkCmd.Flags().BoolVar(&flags.Strict, "strict", false, "Warn when a scenario lacks a Given, When or Then step")
	checkCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the raw JSON report instead of the summary")
	checkCmd.Flags().BoolVar(&flags.Details, "details", false, "List every missing and unused entry with file:line provenance")
	checkCmd.Flags().Float64Var(&flags.FailUnder, "fail-under", 0, "Exit non-zero when coverage falls below this percentage")
	rootCmd.AddCommand(checkCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered files",
		Long:    "Scan and list feature files or step definition files without analyzing them",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "n", "", "Filter files by name pattern (supports wildcards, e.g. '*login*')")
	listCmd.Flags().StringVarP(&flags.FeaturePath, "feature-path", "f", "", "Directory to scan for feature files")
	listCmd.Flags().StringVarP(&flags.StepPath, "step-path", "s", "", "Directory to scan for step definition files")
	listCmd.Flags().BoolVar(&flags.Steps, "steps", false, "List extracted step definitions instead of feature files")
	rootCmd.AddCommand(listCmd)

	// Validate command
	validateCmd := &cobra.Command{
		Use:     "validate",
		Short:   "Validate feature files",
		Long:    "Parse every feature file and report structural errors and warnings",
		RunE:    c.Validate.Execute,
		PreRunE: applyFlags,
	}
	validateCmd.Flags().StringVarP(&flags.FeaturePath, "feature-path", "f", "", "Directory to scan for feature files")
	validateCmd.Flags().BoolVar(&flags.Strict, "strict", false, "Warn when a scenario lacks a Given, When or Then step")
	rootCmd.AddCommand(validateCmd)

	// Generate command
	generateCmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate skeletons for missing steps",
		Long:    "Run discovery and emit skeleton step definitions for every missing step",
		RunE:    c.Generate.Execute,
		PreRunE: applyFlags,
	}
	generateCmd.Flags().BoolVar(&flags.Flat, "flat", false, "Emit a flat list instead of grouping by feature file")
	generateCmd.Flags().StringVarP(&flags.Out, "out", "o", "", "Write generated code to a file instead of stdout")
	generateCmd.Flags().StringVarP(&flags.FeaturePath, "feature-path", "f", "", "Directory to scan for feature files")
	generateCmd.Flags().StringVarP(&flags.StepPath, "step-path", "s", "", "Directory to scan for step definition files")
	rootCmd.AddCommand(generateCmd)

	// Browse command
	browseCmd := &cobra.Command{
		Use:     "browse",
		Short:   "Browse coverage gaps interactively",
		Long:    "Display missing and unused steps from the last check in an interactive viewer",
		RunE:    c.Browse.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(browseCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "Show past coverage runs",
		Long:    "List coverage runs recorded by previous check invocations",
		RunE:    c.History.Execute,
		PreRunE: applyFlags,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "l", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)

	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "p", "", "Project root to analyze")
}
