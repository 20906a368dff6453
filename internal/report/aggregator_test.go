package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"trp/internal/config"
	"trp/internal/domain"
	"trp/internal/storage"
	"trp/internal/ui"
)

// memStorage keeps written artifacts in memory and can be told to fail.
type memStorage struct {
	report     *domain.Report
	summaryMD  string
	failWrites bool
}

func (m *memStorage) WriteReport(r *domain.Report) error {
	if m.failWrites {
		return errors.New("disk full")
	}
	m.report = r
	return nil
}

func (m *memStorage) WriteSummary(r *domain.Report) error {
	if m.failWrites {
		return errors.New("disk full")
	}
	m.summaryMD = storage.RenderSummary(r)
	return nil
}

func (m *memStorage) Load() (*domain.Report, error) { return m.report, nil }
func (m *memStorage) Save(r *domain.Report) error   { m.report = r; return nil }

func newTestAggregator(st storage.Storage) (*Aggregator, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	agg := NewAggregator(ui.NewConsoleWriter(&out, &errOut), st)

	base := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	tick := 0
	agg.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})
	return agg, &out, &errOut
}

func endedTest(path string, retry int, status domain.Status) domain.TestOutcome {
	return domain.TestOutcome{
		Title:      path,
		TitlePath:  []string{"suite", path},
		Status:     status,
		RetryIndex: retry,
		DurationMs: 100,
	}
}

func TestAggregator_CountsMatchOutcomes(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	st := &memStorage{}
	agg, _, _ := newTestAggregator(st)

	agg.OnRunStart(4)
	for i := 0; i < 4; i++ {
		agg.OnTestEnd(endedTest(fmt.Sprintf("test-%d", i), 0, domain.StatusPassed))
	}
	report := agg.OnRunFinish(domain.StatusPassed)

	if len(report.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(report.Results))
	}
	sum := report.Passed + report.Failed + report.TimedOut + report.Skipped + report.Interrupted
	if sum != 4 {
		t.Errorf("per-status counts sum to %d, want 4", sum)
	}
}

func TestAggregator_FinalizeIsTerminal(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	st := &memStorage{}
	agg, _, _ := newTestAggregator(st)

	agg.OnRunStart(1)
	agg.OnTestEnd(endedTest("a", 0, domain.StatusPassed))
	first := agg.OnRunFinish(domain.StatusPassed)

	// A second finish returns the same report; a late test end is ignored.
	agg.OnTestEnd(endedTest("late", 0, domain.StatusFailed))
	second := agg.OnRunFinish(domain.StatusFailed)

	if first != second {
		t.Error("second OnRunFinish should return the original report")
	}
	if len(first.Results) != 1 {
		t.Errorf("expected 1 result, got %d", len(first.Results))
	}
	if first.Status != domain.StatusPassed {
		t.Errorf("status changed after finalize: %s", first.Status)
	}
}

func TestAggregator_FlakyRun(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	st := &memStorage{}
	agg, _, _ := newTestAggregator(st)

	agg.OnRunStart(2)
	agg.OnTestEnd(endedTest("a", 0, domain.StatusFailed))
	agg.OnTestEnd(endedTest("a", 1, domain.StatusPassed))
	agg.OnTestEnd(endedTest("b", 0, domain.StatusPassed))
	report := agg.OnRunFinish(domain.StatusPassed)

	if report.Flaky != 1 {
		t.Errorf("expected 1 flaky test, got %d", report.Flaky)
	}
}

func TestAggregator_ArtifactWriteFailureIsNonFatal(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	st := &memStorage{failWrites: true}
	agg, out, errOut := newTestAggregator(st)

	agg.OnRunStart(1)
	agg.OnTestEnd(endedTest("a", 0, domain.StatusPassed))
	report := agg.OnRunFinish(domain.StatusPassed)

	if report == nil {
		t.Fatal("report should still be produced")
	}
	if !strings.Contains(errOut.String(), "disk full") {
		t.Errorf("expected write warnings on stderr, got: %s", errOut.String())
	}
	// The console summary is the primary CI output and must survive.
	if !strings.Contains(out.String(), "Test Run Summary") {
		t.Error("console summary missing after write failure")
	}
}

func TestAggregator_StepFailureSurfacedLiveOnly(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	st := &memStorage{}
	agg, out, _ := newTestAggregator(st)

	id := domain.TestIdentity{Title: "checkout", TitlePath: []string{"shop", "checkout"}}
	agg.OnRunStart(1)
	agg.OnTestStart(id)
	agg.OnStepStart(id, "add to cart")
	agg.OnStepEnd(id, "add to cart", "")
	agg.OnStepEnd(id, "pay", "card declined")
	agg.OnTestEnd(endedTest("checkout", 0, domain.StatusFailed))
	report := agg.OnRunFinish(domain.StatusFailed)

	if !strings.Contains(out.String(), "card declined") {
		t.Error("failed step not surfaced on console")
	}
	if len(report.Results) != 1 {
		t.Errorf("steps must not be persisted as results, got %d", len(report.Results))
	}
}

func TestAggregator_EndToEnd(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	cfg := config.New()
	cfg.ReportDir = t.TempDir()
	st := storage.NewFileStorage(cfg)
	agg, _, _ := newTestAggregator(st)

	agg.OnRunStart(5)
	agg.OnTestEnd(endedTest("a", 0, domain.StatusPassed))
	agg.OnTestEnd(endedTest("b", 0, domain.StatusPassed))
	agg.OnTestEnd(endedTest("c", 0, domain.StatusPassed))
	failing := endedTest("d", 0, domain.StatusFailed)
	failing.ErrorMessage = "Timeout 30000ms exceeded"
	agg.OnTestEnd(failing)
	agg.OnTestEnd(endedTest("e", 0, domain.StatusSkipped))
	agg.OnRunFinish(domain.StatusFailed)

	data, err := os.ReadFile(cfg.GetReportPath())
	if err != nil {
		t.Fatalf("read custom-report.json: %v", err)
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("parse custom-report.json: %v", err)
	}

	if report.Total != 5 || report.Passed != 3 || report.Failed != 1 ||
		report.Skipped != 1 || report.Flaky != 0 {
		t.Errorf("unexpected counts: %+v", report)
	}
	if report.DurationMs <= 0 {
		t.Errorf("expected positive duration, got %d", report.DurationMs)
	}

	md, err := os.ReadFile(cfg.GetSummaryPath())
	if err != nil {
		t.Fatalf("read summary.md: %v", err)
	}
	summary := string(md)
	if !strings.Contains(summary, "## Failed Tests") {
		t.Error("summary.md missing Failed Tests section")
	}
	if got := strings.Count(summary, "### "); got != 1 {
		t.Errorf("expected exactly 1 failed-test entry, got %d", got)
	}
	if !strings.Contains(summary, "Timeout 30000ms exceeded") {
		t.Error("summary.md missing the failure message")
	}
}

func TestAggregator_FinishWithoutStart(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	st := &memStorage{}
	agg, _, _ := newTestAggregator(st)

	report := agg.OnRunFinish(domain.StatusPassed)
	if report.Total != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}
