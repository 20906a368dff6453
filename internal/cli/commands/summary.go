package commands

import (
	"github.com/spf13/cobra"

	"trp/internal/config"
	"trp/internal/storage"
	"trp/internal/ui"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	config  *config.Config
	storage storage.Storage
	console *ui.Console
}

// NewSummaryCommand creates a new SummaryCommand
func NewSummaryCommand(cfg *config.Config, st storage.Storage, console *ui.Console) *SummaryCommand {
	return &SummaryCommand{
		config:  cfg,
		storage: st,
		console: console,
	}
}

// Execute runs the command
func (sc *SummaryCommand) Execute(cmd *cobra.Command, args []string) error {
	result, err := sc.storage.Load()
	if err != nil {
		return err
	}

	sc.console.PrintSummary(result)
	return nil
}
