package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"trp/internal/config"
	"trp/internal/domain"
	"trp/internal/history"
	"trp/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config  *config.Config
	console *ui.Console
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, console *ui.Console) *HistoryCommand {
	return &HistoryCommand{
		config:  cfg,
		console: console,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	store, err := history.Open(hc.config)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is not configured: set TRP_DB_HOST (and TRP_DB_* as needed)")
	}
	defer store.Close()

	runs, err := store.Recent(hc.config.Flags.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		color.Yellow("No recorded runs")
		return nil
	}

	fmt.Printf("%-6s %-20s %-12s %7s %7s %7s %7s %7s %10s\n",
		"ID", "Recorded", "Status", "Total", "Passed", "Failed", "Skipped", "Flaky", "Duration")
	for _, r := range runs {
		statusStr := string(r.Status)
		switch {
		case r.Status == domain.StatusPassed:
			statusStr = color.GreenString("%-12s", statusStr)
		case r.Status.IsFailure():
			statusStr = color.RedString("%-12s", statusStr)
		default:
			statusStr = fmt.Sprintf("%-12s", statusStr)
		}
		fmt.Printf("%-6d %-20s %s %7d %7d %7d %7d %7d %10s\n",
			r.ID,
			r.RecordedAt.Format("2006-01-02 15:04:05"),
			statusStr,
			r.Total, r.Passed, r.Failed, r.Skipped, r.Flaky,
			(time.Duration(r.DurationMs) * time.Millisecond).String())
	}
	return nil
}
