package domain

// Status is the terminal state of one test execution attempt.
type Status string

const (
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
	StatusTimedOut    Status = "timedOut"
	StatusSkipped     Status = "skipped"
	StatusInterrupted Status = "interrupted"
)

// Glyph returns the console marker for a status. The switch is exhaustive
// over the known statuses; anything else renders as "❓" so an unrecognized
// status is visible in the output instead of silently dropped.
func (s Status) Glyph() string {
	switch s {
	case StatusPassed:
		return "✅"
	case StatusFailed:
		return "❌"
	case StatusTimedOut:
		return "⏱️"
	case StatusSkipped:
		return "⏭️"
	case StatusInterrupted:
		return "🛑"
	default:
		return "❓"
	}
}

// IsFailure reports whether the status counts as a failing outcome for
// exit-code purposes.
func (s Status) IsFailure() bool {
	return s == StatusFailed || s == StatusTimedOut || s == StatusInterrupted
}
