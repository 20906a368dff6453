package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trp/internal/domain"
)

// WriteSummary renders the Markdown summary artifact next to the JSON report.
func (s *FileStorage) WriteSummary(report *domain.Report) error {
	path := s.cfg.GetSummaryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderSummary(report)), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// RenderSummary builds the summary.md document for a finished run.
func RenderSummary(report *domain.Report) string {
	var b strings.Builder

	b.WriteString("# Test Run Summary\n\n")
	fmt.Fprintf(&b, "- **Date:** %s\n", report.StartTime)
	fmt.Fprintf(&b, "- **Duration:** %s\n", formatDuration(report.DurationMs))
	fmt.Fprintf(&b, "- **Status:** %s %s\n\n", report.Status.Glyph(), report.Status)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Status | Count | Percentage |\n")
	b.WriteString("|--------|-------|------------|\n")
	writeCountRow(&b, "✅ Passed", report.Passed, report.Total)
	writeCountRow(&b, "❌ Failed", report.Failed, report.Total)
	writeCountRow(&b, "⏱️ Timed Out", report.TimedOut, report.Total)
	writeCountRow(&b, "⏭️ Skipped", report.Skipped, report.Total)
	writeCountRow(&b, "🛑 Interrupted", report.Interrupted, report.Total)
	writeCountRow(&b, "🔁 Flaky", report.Flaky, report.Total)
	fmt.Fprintf(&b, "| **Total** | **%d** | |\n\n", report.Total)

	if failed := report.FailedResults(); len(failed) > 0 {
		b.WriteString("## Failed Tests\n\n")
		for _, o := range failed {
			fmt.Fprintf(&b, "### %s %s\n\n", o.Status.Glyph(), o.Title)
			if loc := o.Location(); loc != "" {
				fmt.Fprintf(&b, "- **Location:** `%s`\n", loc)
			}
			if len(o.Tags) > 0 {
				fmt.Fprintf(&b, "- **Tags:** %s\n", strings.Join(o.Tags, ", "))
			}
			if o.ErrorMessage != "" {
				fmt.Fprintf(&b, "\n```\n%s\n```\n", o.ErrorMessage)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("<details>\n<summary>All Results</summary>\n\n")
	b.WriteString("| Test | Status | Duration | Tags |\n")
	b.WriteString("|------|--------|----------|------|\n")
	for _, o := range report.Results {
		fmt.Fprintf(&b, "| %s | %s %s | %s | %s |\n",
			strings.Join(o.TitlePath, " > "),
			o.Status.Glyph(), o.Status,
			formatDuration(o.DurationMs),
			strings.Join(o.Tags, ", "))
	}
	b.WriteString("\n</details>\n")

	return b.String()
}

func writeCountRow(b *strings.Builder, label string, count, total int) {
	fmt.Fprintf(b, "| %s | %d | %.1f%% |\n", label, count, domain.Percentage(count, total))
}

func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Millisecond).String()
}
