package config

const (
	// DefaultReportDir is the default report output directory
	DefaultReportDir = "test-results"
	// DefaultReportJSONFile is the machine-readable report file name
	DefaultReportJSONFile = "custom-report.json"
	// DefaultSummaryMDFile is the human-readable summary file name
	DefaultSummaryMDFile = "summary.md"
	// DefaultHistoryTable is the MySQL table run history is recorded in
	DefaultHistoryTable = "test_runs"
	// DefaultHistoryLimit is how many runs the history command lists
	DefaultHistoryLimit = 20
)
