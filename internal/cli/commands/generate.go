package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"stepcov/internal/config"
	"stepcov/internal/discovery"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	config    *config.Config
	engine    *discovery.Engine
	generator *discovery.Generator
}

// NewGenerateCommand creates a new GenerateCommand
func NewGenerateCommand(cfg *config.Config, engine *discovery.Engine, generator *discovery.Generator) *GenerateCommand {
	return &GenerateCommand{
		config:    cfg,
		engine:    engine,
		generator: generator,
	}
}

// Execute runs the command
func (gc *GenerateCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := gc.engine.Discover()
	if err != nil {
		return err
	}

	if len(report.Missing) == 0 {
		color.Green("✓ No missing steps, nothing to generate")
		return nil
	}

	code := gc.generator.Render(report.Missing, !gc.config.Flags.Flat)

	if out := gc.config.Flags.Out; out != "" {
		if err := os.WriteFile(out, []byte(code), 0644); err != nil {
			return fmt.Errorf("write generated steps: %w", err)
		}
		color.Green("✓ Wrote skeletons for %d missing step(s) to %s", len(report.Missing), out)
		return nil
	}

	fmt.Print(code)
	return nil
}
