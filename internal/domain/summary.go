package domain

import (
	"errors"
	"time"
)

// ErrRunFailed signals that the run finished with at least one failing
// outcome or a non-passed runner status. main maps it to exit code 1.
var ErrRunFailed = errors.New("test run failed")

// Counts holds the derived per-status totals of a finished run.
type Counts struct {
	Total       int `json:"total_tests"`
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	TimedOut    int `json:"timed_out"`
	Skipped     int `json:"skipped"`
	Interrupted int `json:"interrupted"`
	Flaky       int `json:"flaky"`
}

// RunSummary accumulates the outcomes of exactly one run. It is created at
// run start, mutated only by Append, and finalized exactly once. The caller
// (the runner's event dispatch) must serialize calls; RunSummary holds no
// lock of its own.
type RunSummary struct {
	StartTime time.Time
	EndTime   time.Time
	Status    Status
	Expected  int
	Outcomes  []TestOutcome

	finalized bool
}

// NewRunSummary starts an empty summary at the given time.
func NewRunSummary(start time.Time, expected int) *RunSummary {
	return &RunSummary{StartTime: start, Expected: expected}
}

// Append records one (test, attempt) outcome. It is a no-op after Finalize.
func (rs *RunSummary) Append(o TestOutcome) {
	if rs.finalized {
		return
	}
	rs.Outcomes = append(rs.Outcomes, o)
}

// Finalized reports whether Finalize has been called.
func (rs *RunSummary) Finalized() bool {
	return rs.finalized
}

// Finalize seals the summary and computes the derived counts. Calling it
// again returns the same counts without re-mutating anything.
func (rs *RunSummary) Finalize(end time.Time, status Status) Counts {
	if !rs.finalized {
		rs.EndTime = end
		rs.Status = status
		rs.finalized = true
	}
	return ComputeCounts(rs.Outcomes)
}

// TotalDurationMs is EndTime - StartTime in milliseconds. Zero before
// Finalize.
func (rs *RunSummary) TotalDurationMs() int64 {
	if rs.EndTime.IsZero() {
		return 0
	}
	return rs.EndTime.Sub(rs.StartTime).Milliseconds()
}

// ComputeCounts derives per-status totals from a sequence of outcomes. It is
// a pure function: calling it twice on the same slice yields identical
// counts.
//
// Flaky detection groups outcomes by their joined title path (there is no
// separate test ID in the event stream): a group is flaky when its highest
// retry index is > 0 and the outcome at that index passed.
func ComputeCounts(outcomes []TestOutcome) Counts {
	c := Counts{Total: len(outcomes)}

	type latest struct {
		retryIndex int
		status     Status
	}
	groups := make(map[string]latest)

	for _, o := range outcomes {
		switch o.Status {
		case StatusPassed:
			c.Passed++
		case StatusFailed:
			c.Failed++
		case StatusTimedOut:
			c.TimedOut++
		case StatusSkipped:
			c.Skipped++
		case StatusInterrupted:
			c.Interrupted++
		}

		key := o.Key()
		if cur, ok := groups[key]; !ok || o.RetryIndex >= cur.retryIndex {
			groups[key] = latest{retryIndex: o.RetryIndex, status: o.Status}
		}
	}

	for _, g := range groups {
		if g.retryIndex > 0 && g.status == StatusPassed {
			c.Flaky++
		}
	}

	return c
}

// Percentage renders count/total as a percentage with one decimal. A zero
// total renders as 0.0, never NaN.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	// Round to one decimal place.
	return float64(int(float64(count)/float64(total)*1000+0.5)) / 10
}
