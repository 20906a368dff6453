package domain

import "time"

// Report is the canonical machine-readable record written to
// custom-report.json. Downstream tooling (notification senders, dashboards)
// reads this schema, so field names are stable.
type Report struct {
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	DurationMs  int64         `json:"duration_ms"`
	Status      Status        `json:"status"`
	Total       int           `json:"total_tests"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	TimedOut    int           `json:"timed_out"`
	Skipped     int           `json:"skipped"`
	Interrupted int           `json:"interrupted"`
	Flaky       int           `json:"flaky"`
	Results     []TestOutcome `json:"results"`
}

// NewReport builds the artifact form of a finalized run summary.
func NewReport(rs *RunSummary, counts Counts) *Report {
	return &Report{
		StartTime:   rs.StartTime.Format(time.RFC3339),
		EndTime:     rs.EndTime.Format(time.RFC3339),
		DurationMs:  rs.TotalDurationMs(),
		Status:      rs.Status,
		Total:       counts.Total,
		Passed:      counts.Passed,
		Failed:      counts.Failed,
		TimedOut:    counts.TimedOut,
		Skipped:     counts.Skipped,
		Interrupted: counts.Interrupted,
		Flaky:       counts.Flaky,
		Results:     rs.Outcomes,
	}
}

// FailedResults returns the outcomes with a failing status, in run order.
func (r *Report) FailedResults() []TestOutcome {
	var failed []TestOutcome
	for _, o := range r.Results {
		if o.Status.IsFailure() {
			failed = append(failed, o)
		}
	}
	return failed
}

// HasFailures reports whether the run should be treated as failed.
func (r *Report) HasFailures() bool {
	return r.Failed > 0 || r.Status.IsFailure()
}
