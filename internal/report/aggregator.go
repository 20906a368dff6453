// Package report turns the runner's lifecycle callbacks into a durable run
// report: a JSON artifact, a Markdown summary, and live console output.
package report

import (
	"time"

	"trp/internal/domain"
	"trp/internal/storage"
	"trp/internal/ui"
)

// Aggregator accumulates test outcomes for exactly one run. It holds no
// lock: the runner's event dispatch must serialize calls to any callback,
// even when test bodies execute in parallel. One Aggregator instance owns
// one RunSummary; nothing is shared between runs.
type Aggregator struct {
	console      *ui.Console
	storage      storage.Storage
	progress     *ui.ProgressBar
	showProgress bool
	clock        func() time.Time

	summary *domain.RunSummary
	report  *domain.Report

	passedSoFar int
	failedSoFar int
}

// NewAggregator creates an Aggregator writing artifacts through st and live
// output through console.
func NewAggregator(console *ui.Console, st storage.Storage) *Aggregator {
	return &Aggregator{
		console: console,
		storage: st,
		clock:   time.Now,
	}
}

// EnableProgress makes OnRunStart attach a live progress bar sized to the
// run's expected test count.
func (a *Aggregator) EnableProgress() {
	a.showProgress = true
}

// SetClock overrides the time source (used in tests).
func (a *Aggregator) SetClock(clock func() time.Time) {
	a.clock = clock
}

// OnRunStart records the start time and announces the run.
func (a *Aggregator) OnRunStart(totalTests int) {
	a.summary = domain.NewRunSummary(a.clock(), totalTests)
	a.console.RunStarted(totalTests)
	if a.showProgress {
		a.progress = ui.NewProgressBar(totalTests)
	}
}

// OnTestStart surfaces a test that began executing. It never mutates the
// run summary.
func (a *Aggregator) OnTestStart(id domain.TestIdentity) {
	a.console.TestStarted(id)
}

// OnStepStart is a live-output hook only; steps are not persisted.
func (a *Aggregator) OnStepStart(id domain.TestIdentity, stepTitle string) {
}

// OnStepEnd surfaces failed steps live; passing steps stay quiet.
func (a *Aggregator) OnStepEnd(id domain.TestIdentity, stepTitle, stepError string) {
	if stepError != "" {
		a.console.StepFailed(id.Title, stepTitle, stepError)
	}
}

// OnTestEnd appends one outcome per (test, attempt). The runner guarantees
// exactly one call per attempt; nothing is deduplicated here.
func (a *Aggregator) OnTestEnd(outcome domain.TestOutcome) {
	if a.summary == nil {
		a.summary = domain.NewRunSummary(a.clock(), 0)
	}
	a.summary.Append(outcome)
	a.console.TestFinished(outcome)

	if a.progress != nil {
		if outcome.Status == domain.StatusPassed {
			a.passedSoFar++
		} else if outcome.Status.IsFailure() {
			a.failedSoFar++
		}
		a.progress.Update(a.passedSoFar, a.failedSoFar)
	}
}

// OnRunFinish seals the summary, writes both artifacts, and prints the final
// console block. Artifact writes are best-effort: a failed write is a stderr
// warning, never an error return, and the console summary is printed
// regardless since it is the primary CI-log output. Calling OnRunFinish
// again returns the report built by the first call.
func (a *Aggregator) OnRunFinish(status domain.Status) *domain.Report {
	if a.summary == nil {
		a.summary = domain.NewRunSummary(a.clock(), 0)
	}
	if a.summary.Finalized() {
		return a.report
	}

	if a.progress != nil {
		a.progress.Finish()
	}

	counts := a.summary.Finalize(a.clock(), status)
	a.report = domain.NewReport(a.summary, counts)

	if err := a.storage.WriteReport(a.report); err != nil {
		a.console.Warn("failed to write JSON report: %v", err)
	}
	if err := a.storage.WriteSummary(a.report); err != nil {
		a.console.Warn("failed to write Markdown summary: %v", err)
	}

	a.console.PrintSummary(a.report)
	return a.report
}

// Report returns the finalized report, or nil before OnRunFinish.
func (a *Aggregator) Report() *domain.Report {
	return a.report
}
