package commands

import (
	"fmt"
	"os"

	"trp/internal/config"
	"trp/internal/domain"
	"trp/internal/events"
	"trp/internal/history"
	"trp/internal/report"
	"trp/internal/ui"

	"github.com/spf13/cobra"
)

// ReportCommand handles the report command
type ReportCommand struct {
	config     *config.Config
	reader     *events.Reader
	aggregator *report.Aggregator
	console    *ui.Console
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(
	cfg *config.Config,
	reader *events.Reader,
	aggregator *report.Aggregator,
	console *ui.Console,
) *ReportCommand {
	return &ReportCommand{
		config:     cfg,
		reader:     reader,
		aggregator: aggregator,
		console:    console,
	}
}

// Execute runs the command. The exit code is driven only by test results:
// artifact or history write failures downgrade to warnings.
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	src := os.Stdin
	if rc.config.Flags.EventsFile != "" {
		f, err := os.Open(rc.config.Flags.EventsFile)
		if err != nil {
			return fmt.Errorf("open event stream: %w", err)
		}
		defer f.Close()
		src = f
	}

	if rc.config.Flags.Progress {
		rc.aggregator.EnableProgress()
	}

	result, err := rc.reader.Replay(src, rc.aggregator)
	if err != nil {
		return err
	}

	if rc.config.Flags.History {
		rc.recordHistory(result)
	}

	if result.HasFailures() {
		return domain.ErrRunFailed
	}
	return nil
}

func (rc *ReportCommand) recordHistory(result *domain.Report) {
	store, err := history.Open(rc.config)
	if err != nil {
		rc.console.Warn("history disabled: %v", err)
		return
	}
	if store == nil {
		rc.console.Warn("history requested but TRP_DB_HOST is not set")
		return
	}
	defer store.Close()

	if err := store.Record(result); err != nil {
		rc.console.Warn("failed to record run history: %v", err)
	}
}
