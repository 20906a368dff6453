package domain

import (
	"fmt"
	"strings"
)

// TestIdentity identifies a test as declared in the suite, independent of
// any particular execution attempt.
type TestIdentity struct {
	Title     string   `json:"title"`
	TitlePath []string `json:"title_path"`
	File      string   `json:"file"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	Tags      []string `json:"tags,omitempty"`

	Annotations []Annotation `json:"annotations,omitempty"`
}

// Key returns the grouping key shared by all attempts of the same logical
// test. The runner provides no separate test ID, so the joined title path is
// the best available identity; a suite that reuses the exact same path for
// two distinct tests will have their attempts grouped together.
func (id TestIdentity) Key() string {
	return strings.Join(id.TitlePath, " > ")
}

// Location returns "file:line" for console and markdown output.
func (id TestIdentity) Location() string {
	if id.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", id.File, id.Line)
}

// Annotation is free-form metadata attached to a test declaration.
type Annotation struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Attachment is an opaque reference to a file the runner produced
// (screenshot, trace). The aggregator never opens or interprets it.
type Attachment struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
}

// TestOutcome is the result of one (test, attempt) pair. A retried test
// produces multiple outcomes sharing the same TitlePath with distinct
// RetryIndex values.
type TestOutcome struct {
	Title      string   `json:"title"`
	TitlePath  []string `json:"title_path"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Column     int      `json:"column"`
	Status     Status   `json:"status"`
	DurationMs int64    `json:"duration_ms"`
	RetryIndex int      `json:"retry_index"`

	ErrorMessage string `json:"error_message,omitempty"`
	ErrorStack   string `json:"error_stack,omitempty"`
	Stdout       string `json:"stdout,omitempty"`
	Stderr       string `json:"stderr,omitempty"`

	Attachments []Attachment `json:"attachments,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`

	// Resolved tracks whether the failure was marked handled in the
	// failures viewer. Persisted back into custom-report.json.
	Resolved bool `json:"resolved,omitempty"`
}

// Key returns the same grouping key as TestIdentity.Key.
func (o TestOutcome) Key() string {
	return strings.Join(o.TitlePath, " > ")
}

// Location returns "file:line" for console and markdown output.
func (o TestOutcome) Location() string {
	if o.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}
