// Package events decodes the runner's line-delimited JSON lifecycle stream.
package events

import (
	"trp/internal/domain"
)

// Event kinds emitted by the runner, one JSON object per line.
const (
	KindRunStart  = "runStart"
	KindTestStart = "testStart"
	KindStepStart = "stepStart"
	KindStepEnd   = "stepEnd"
	KindTestEnd   = "testEnd"
	KindRunEnd    = "runEnd"
)

// Envelope is one line of the stream. Only the fields matching the event
// kind are populated.
type Envelope struct {
	Event string `json:"event"`

	// runStart
	TotalTests int `json:"total_tests,omitempty"`

	// testStart, stepStart, stepEnd, testEnd
	Test *domain.TestIdentity `json:"test,omitempty"`

	// stepStart, stepEnd
	Step *Step `json:"step,omitempty"`

	// testEnd
	Result *Result `json:"result,omitempty"`

	// runEnd
	Status domain.Status `json:"status,omitempty"`
}

// Step is the step-level payload. Steps are surfaced live, never persisted.
type Step struct {
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Result is the per-attempt payload of a testEnd event.
type Result struct {
	Status      domain.Status       `json:"status"`
	DurationMs  int64               `json:"duration_ms"`
	RetryIndex  int                 `json:"retry_index"`
	Error       *ResultError        `json:"error,omitempty"`
	Stdout      string              `json:"stdout,omitempty"`
	Stderr      string              `json:"stderr,omitempty"`
	Attachments []domain.Attachment `json:"attachments,omitempty"`
}

// ResultError is the error payload attached to failed and timed-out attempts.
type ResultError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Outcome combines a test identity and attempt result into the persisted
// TestOutcome record.
func (e *Envelope) Outcome() domain.TestOutcome {
	o := domain.TestOutcome{}
	if e.Test != nil {
		o.Title = e.Test.Title
		o.TitlePath = e.Test.TitlePath
		o.File = e.Test.File
		o.Line = e.Test.Line
		o.Column = e.Test.Column
		o.Tags = e.Test.Tags
		o.Annotations = e.Test.Annotations
	}
	if e.Result != nil {
		o.Status = e.Result.Status
		o.DurationMs = e.Result.DurationMs
		o.RetryIndex = e.Result.RetryIndex
		o.Stdout = e.Result.Stdout
		o.Stderr = e.Result.Stderr
		o.Attachments = e.Result.Attachments
		if e.Result.Error != nil {
			o.ErrorMessage = e.Result.Error.Message
			o.ErrorStack = e.Result.Error.Stack
		}
	}
	if o.DurationMs < 0 {
		o.DurationMs = 0
	}
	return o
}
