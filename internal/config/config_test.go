package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ReportDir != DefaultReportDir {
		t.Errorf("expected ReportDir %s, got %s", DefaultReportDir, cfg.ReportDir)
	}
	if cfg.ReportJSONFile != DefaultReportJSONFile {
		t.Errorf("expected ReportJSONFile %s, got %s", DefaultReportJSONFile, cfg.ReportJSONFile)
	}
	if cfg.HistoryTable != DefaultHistoryTable {
		t.Errorf("expected HistoryTable %s, got %s", DefaultHistoryTable, cfg.HistoryTable)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("TRP_REPORT_DIR", "/tmp/reports")
	t.Setenv("TRP_HISTORY_TABLE", "ci_runs")

	cfg := New()
	if cfg.ReportDir != "/tmp/reports" {
		t.Errorf("expected env override for ReportDir, got %s", cfg.ReportDir)
	}
	if cfg.HistoryTable != "ci_runs" {
		t.Errorf("expected env override for HistoryTable, got %s", cfg.HistoryTable)
	}
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("TRP_REPORT_DIR", "/tmp/from-env")

	cfg := Load(Flags{ReportDir: "/tmp/from-flag"})
	if cfg.ReportDir != "/tmp/from-flag" {
		t.Errorf("expected flag to win, got %s", cfg.ReportDir)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		reportDir string
		wantErr   bool
	}{
		{"default dir", DefaultReportDir, false},
		{"empty dir", "", true},
		{"whitespace dir", "   ", true},
		{"nonexistent dir is fine, created on write", filepath.Join(t.TempDir(), "nested"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.ReportDir = tt.reportDir
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateRejectsFileAsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := New()
	cfg.ReportDir = file
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for file used as report dir")
	}
}

func TestConfig_GetReportPath(t *testing.T) {
	cfg := New()
	cfg.ReportDir = "/reports"

	if got := cfg.GetReportPath(); got != "/reports/custom-report.json" {
		t.Errorf("unexpected report path: %s", got)
	}
	if got := cfg.GetSummaryPath(); got != "/reports/summary.md" {
		t.Errorf("unexpected summary path: %s", got)
	}
}

func TestConfig_GetHistoryDSN(t *testing.T) {
	t.Run("unset host disables history", func(t *testing.T) {
		t.Setenv("TRP_DB_HOST", "")
		cfg := New()
		if dsn := cfg.GetHistoryDSN(); dsn != "" {
			t.Errorf("expected empty DSN, got %s", dsn)
		}
	})

	t.Run("defaults fill in around host", func(t *testing.T) {
		t.Setenv("TRP_DB_HOST", "127.0.0.1")
		t.Setenv("TRP_DB_PORT", "")
		t.Setenv("TRP_DB_USERNAME", "")
		t.Setenv("TRP_DB_PASSWORD", "")
		t.Setenv("TRP_DB_DATABASE", "")

		cfg := New()
		expected := "root:@tcp(127.0.0.1:3306)/trp?parseTime=true"
		if dsn := cfg.GetHistoryDSN(); dsn != expected {
			t.Errorf("expected %s, got %s", expected, dsn)
		}
	})
}
