package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Output settings
	ReportDir      string
	ReportJSONFile string
	SummaryMDFile  string

	// History settings
	HistoryTable string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	EventsFile string
	ReportDir  string
	Progress   bool
	History    bool
	Filter     string
	Limit      int
}

// New creates a new Config with defaults. A .env file in the working
// directory is loaded first if present so TRP_* variables can override
// defaults without flags.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ReportDir:      DefaultReportDir,
		ReportJSONFile: DefaultReportJSONFile,
		SummaryMDFile:  DefaultSummaryMDFile,
		HistoryTable:   DefaultHistoryTable,
		Flags:          Flags{Limit: DefaultHistoryLimit},
	}

	if dir := os.Getenv("TRP_REPORT_DIR"); dir != "" {
		cfg.ReportDir = dir
	}
	if table := os.Getenv("TRP_HISTORY_TABLE"); table != "" {
		cfg.HistoryTable = table
	}

	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.ReportDir != "" {
		cfg.ReportDir = flags.ReportDir
	}

	return cfg
}

// Validate checks the report directory path before any events are consumed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ReportDir) == "" {
		return fmt.Errorf("report directory must not be empty")
	}
	if info, err := os.Stat(c.ReportDir); err == nil && !info.IsDir() {
		return fmt.Errorf("report path is not a directory: %s", c.ReportDir)
	}
	return nil
}

// GetReportPath returns the absolute path of the JSON report so every
// command reads and writes the same file regardless of cwd.
func (c *Config) GetReportPath() string {
	p := filepath.Join(c.ReportDir, c.ReportJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetSummaryPath returns the absolute path of the Markdown summary.
func (c *Config) GetSummaryPath() string {
	p := filepath.Join(c.ReportDir, c.SummaryMDFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryDSN builds the MySQL connection string from TRP_DB_* variables.
// An empty string means history is not configured.
func (c *Config) GetHistoryDSN() string {
	host := os.Getenv("TRP_DB_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("TRP_DB_PORT")
	if port == "" {
		port = "3306"
	}
	user := os.Getenv("TRP_DB_USERNAME")
	if user == "" {
		user = "root"
	}
	password := os.Getenv("TRP_DB_PASSWORD")
	database := os.Getenv("TRP_DB_DATABASE")
	if database == "" {
		database = "trp"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, password, host, port, database)
}
