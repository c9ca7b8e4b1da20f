package commands

import (
	"github.com/spf13/cobra"
	"stepcov/internal/config"
	"stepcov/internal/storage"
	"stepcov/internal/ui"
)

// BrowseCommand handles the browse command
type BrowseCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewBrowseCommand creates a new BrowseCommand
func NewBrowseCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *BrowseCommand {
	return &BrowseCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (bc *BrowseCommand) Execute(cmd *cobra.Command, args []string) error {
	report, err := bc.storage.Load()
	if err != nil {
		return err
	}
	return bc.viewer.View(report)
}
