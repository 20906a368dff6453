package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"trp/internal/domain"
)

// Sink receives the decoded lifecycle callbacks in stream order. The report
// aggregator is the production implementation.
type Sink interface {
	OnRunStart(totalTests int)
	OnTestStart(id domain.TestIdentity)
	OnStepStart(id domain.TestIdentity, stepTitle string)
	OnStepEnd(id domain.TestIdentity, stepTitle, stepError string)
	OnTestEnd(outcome domain.TestOutcome)
	OnRunFinish(status domain.Status) *domain.Report
}

// Warner lets the reader surface recoverable stream oddities.
type Warner interface {
	Warn(format string, args ...interface{})
}

// Reader replays an NDJSON event stream into a Sink.
type Reader struct {
	warner Warner
}

// NewReader creates a Reader reporting oddities through w.
func NewReader(w Warner) *Reader {
	return &Reader{warner: w}
}

// Replay decodes events line by line and dispatches them in order. Blank
// lines are skipped; an unknown event kind is a warning, not an error; a
// malformed line is a decode error since the stream is machine-written.
// The report from the runEnd event is returned. A stream that ends without
// a runEnd event is finalized as interrupted so artifacts still exist.
func (r *Reader) Replay(src io.Reader, sink Sink) (*domain.Report, error) {
	scanner := bufio.NewScanner(src)
	// Attempts can carry full stdout captures; allow long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var env Envelope
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			return nil, fmt.Errorf("decode event line %d: %w", lineNo, err)
		}

		switch env.Event {
		case KindRunStart:
			sink.OnRunStart(env.TotalTests)
		case KindTestStart:
			sink.OnTestStart(identity(&env))
		case KindStepStart:
			sink.OnStepStart(identity(&env), stepTitle(&env))
		case KindStepEnd:
			sink.OnStepEnd(identity(&env), stepTitle(&env), stepError(&env))
		case KindTestEnd:
			sink.OnTestEnd(env.Outcome())
		case KindRunEnd:
			return sink.OnRunFinish(env.Status), nil
		default:
			if r.warner != nil {
				r.warner.Warn("skipping unknown event %q on line %d", env.Event, lineNo)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event stream: %w", err)
	}

	if r.warner != nil {
		r.warner.Warn("event stream ended without a runEnd event")
	}
	return sink.OnRunFinish(domain.StatusInterrupted), nil
}

func identity(env *Envelope) domain.TestIdentity {
	if env.Test == nil {
		return domain.TestIdentity{}
	}
	return *env.Test
}

func stepTitle(env *Envelope) string {
	if env.Step == nil {
		return ""
	}
	return env.Step.Title
}

func stepError(env *Envelope) string {
	if env.Step == nil {
		return ""
	}
	return env.Step.Error
}
