package commands

import (
	"trp/internal/cli"
	"trp/internal/config"
	"trp/internal/events"
	"trp/internal/report"
	"trp/internal/storage"
	"trp/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Report   *ReportCommand
	Summary  *SummaryCommand
	Failures *FailuresCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	console := ui.NewConsole()
	fileStorage := storage.NewFileStorage(cfg)
	aggregator := report.NewAggregator(console, fileStorage)
	reader := events.NewReader(console)
	viewer := ui.NewFailureViewer(fileStorage)

	return &Commands{
		Report:   NewReportCommand(cfg, reader, aggregator, console),
		Summary:  NewSummaryCommand(cfg, fileStorage, console),
		Failures: NewFailuresCommand(cfg, fileStorage, viewer),
		History:  NewHistoryCommand(cfg, console),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		if flags.ReportDir != "" {
			cfg.ReportDir = flags.ReportDir
		}
		return cfg.Validate()
	}

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Consume a runner event stream and produce run artifacts",
		Long: "Read the test runner's NDJSON lifecycle event stream (from a file or stdin), " +
			"aggregate the outcomes, and write custom-report.json and summary.md alongside a console summary",
		RunE:    c.Report.Execute,
		PreRunE: applyFlags,
	}
	reportCmd.Flags().StringVarP(&flags.EventsFile, "events", "e", "", "Path to the NDJSON event stream (default: stdin)")
	reportCmd.Flags().StringVarP(&flags.ReportDir, "report-dir", "d", "", "Directory the artifacts are written to")
	reportCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a live progress bar on stderr")
	reportCmd.Flags().BoolVar(&flags.History, "history", false, "Record the finished run in the MySQL history table")
	rootCmd.AddCommand(reportCmd)

	// Summary command
	summaryCmd := &cobra.Command{
		Use:     "summary",
		Short:   "Re-print the summary of the last run",
		Long:    "Read custom-report.json from the report directory and print the bordered summary block",
		RunE:    c.Summary.Execute,
		PreRunE: applyFlags,
	}
	summaryCmd.Flags().StringVarP(&flags.ReportDir, "report-dir", "d", "", "Directory the artifacts were written to")
	rootCmd.AddCommand(summaryCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "Browse test failures interactively",
		Long:    "Display the failures recorded in custom-report.json in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	failuresCmd.Flags().StringVarP(&flags.ReportDir, "report-dir", "d", "", "Directory the artifacts were written to")
	failuresCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter failures by title pattern (supports wildcards, e.g. '*checkout*')")
	rootCmd.AddCommand(failuresCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "List recent runs recorded in MySQL",
		Long:    "Query the history table and list the most recent recorded runs",
		RunE:    c.History.Execute,
		PreRunE: applyFlags,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", config.DefaultHistoryLimit, "Maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}
