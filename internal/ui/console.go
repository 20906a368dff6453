package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"trp/internal/domain"
)

// Console renders live run progress and the final summary block. All output
// goes to out except warnings, which go to errOut so CI logs keep them apart
// from the report itself.
type Console struct {
	out    io.Writer
	errOut io.Writer
}

// NewConsole creates a Console writing to stdout/stderr.
func NewConsole() *Console {
	return &Console{out: os.Stdout, errOut: os.Stderr}
}

// NewConsoleWriter creates a Console with explicit writers (used in tests).
func NewConsoleWriter(out, errOut io.Writer) *Console {
	return &Console{out: out, errOut: errOut}
}

// RunStarted prints the run header with the expected test count.
func (c *Console) RunStarted(totalTests int) {
	fmt.Fprintf(c.out, "%s %s\n",
		color.CyanString("▶ Starting test run:"),
		color.WhiteString("%d tests", totalTests))
}

// TestStarted prints a progress line for a test that began executing.
func (c *Console) TestStarted(id domain.TestIdentity) {
	fmt.Fprintf(c.out, "  %s %s\n", color.CyanString("⋯"), strings.Join(id.TitlePath, " > "))
}

// StepFailed surfaces a failed step live; steps are never persisted.
func (c *Console) StepFailed(testTitle, stepTitle, errMsg string) {
	fmt.Fprintf(c.out, "    %s %s › %s: %s\n",
		color.RedString("✗ step"), testTitle, stepTitle, errMsg)
}

// TestFinished prints the per-test glyph line with duration.
func (c *Console) TestFinished(o domain.TestOutcome) {
	line := fmt.Sprintf("  %s %s (%s)", o.Status.Glyph(),
		strings.Join(o.TitlePath, " > "), formatMs(o.DurationMs))
	if o.RetryIndex > 0 {
		line += color.YellowString(" [retry #%d]", o.RetryIndex)
	}
	fmt.Fprintln(c.out, line)
}

// Warn reports a recoverable problem (e.g. an artifact write failure)
// without touching the exit code.
func (c *Console) Warn(format string, args ...interface{}) {
	fmt.Fprintln(c.errOut, color.YellowString("⚠ "+format, args...))
}

// PrintSummary renders the bordered final summary block. This is the primary
// CI-log output and is printed even when artifact writes fail.
func (c *Console) PrintSummary(report *domain.Report) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(c.out, color.CyanString("║                      Test Run Summary                          ║"))
	fmt.Fprintln(c.out, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))

	fmt.Fprintln(c.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	c.printRow("Total Tests", color.WhiteString("%d", report.Total))
	c.printDivider()
	c.printRow("Passed", color.GreenString("%d (%.1f%%)", report.Passed, domain.Percentage(report.Passed, report.Total)))
	c.printDivider()
	c.printRow("Failed", color.RedString("%d (%.1f%%)", report.Failed, domain.Percentage(report.Failed, report.Total)))
	c.printDivider()
	c.printRow("Timed Out", color.RedString("%d", report.TimedOut))
	c.printDivider()
	c.printRow("Skipped", color.YellowString("%d", report.Skipped))
	c.printDivider()
	c.printRow("Interrupted", color.RedString("%d", report.Interrupted))
	c.printDivider()
	c.printRow("Flaky", color.YellowString("%d", report.Flaky))
	c.printDivider()
	c.printRow("Duration", color.WhiteString("%s", formatMs(report.DurationMs)))
	c.printDivider()
	c.printRow("Status", fmt.Sprintf("%s %s", report.Status.Glyph(), report.Status))
	fmt.Fprintln(c.out, "└─────────────────────────────────┴─────────────────────────────┘")

	failed := report.FailedResults()
	if len(failed) == 0 {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, color.GreenString("✓ All tests passed!"))
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, color.RedString("✗ %d failed test(s):", len(failed)))
	for i, o := range failed {
		fmt.Fprintf(c.out, "  %s %s\n", color.RedString("%d.", i+1), strings.Join(o.TitlePath, " > "))
		if loc := o.Location(); loc != "" {
			fmt.Fprintf(c.out, "     %s\n", color.YellowString(loc))
		}
		if o.ErrorMessage != "" {
			fmt.Fprintf(c.out, "     %s\n", firstLine(o.ErrorMessage))
		}
	}
}

func (c *Console) printRow(label, value string) {
	fmt.Fprintf(c.out, "│ %-31s │ %-27s │\n", label, value)
}

func (c *Console) printDivider() {
	fmt.Fprintln(c.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

func formatMs(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
