package main

import (
	"fmt"
	"os"

	"stepcov/internal/cli"
	"stepcov/internal/cli/commands"
	"stepcov/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "stepcov",
		Short:   "Gherkin step coverage analyzer",
		Long:    `A static analyzer for Gherkin feature suites. Parses feature files, extracts step definitions from source files and reports which steps are missing an implementation and which implementations are never exercised.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
