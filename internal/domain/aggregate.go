package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// AggregatedResult is the merge of every artifact found for a run. Its JSON
// shape matches a single artifact so it can be fed back to any consumer of
// the reporter format.
type AggregatedResult struct {
	Stats   Stats           `json:"stats"`
	Results []Suite         `json:"results"`
	Meta    json.RawMessage `json:"meta,omitempty"`

	// Sources lists the artifact files in merge order.
	Sources []string `json:"-"`
}

// TestRecord is one test flattened out of the suite tree.
type TestRecord struct {
	Spec      string
	SuitePath []string
	Title     string
	FullTitle string
	State     TestState
	Duration  time.Duration
	Err       TestError
}

// Records flattens the suite tree into per-test records in display order.
func (a *AggregatedResult) Records() []TestRecord {
	var records []TestRecord
	for i := range a.Results {
		spec := a.Results[i].File
		if spec == "" {
			spec = a.Results[i].FullFile
		}
		Walk(a.Results[i:i+1], func(path []string, _ *Suite, t *Test) {
			records = append(records, TestRecord{
				Spec:      spec,
				SuitePath: append([]string(nil), path...),
				Title:     t.Title,
				FullTitle: t.FullTitle,
				State:     t.ResolvedState(),
				Duration:  time.Duration(t.Duration) * time.Millisecond,
				Err:       t.Err,
			})
		})
	}
	return records
}

// Failures returns the failed tests of the aggregate as TestFailure values.
func (a *AggregatedResult) Failures() []TestFailure {
	var failures []TestFailure
	for _, r := range a.Records() {
		if r.State != StateFailed {
			continue
		}
		fullTitle := r.FullTitle
		if fullTitle == "" {
			fullTitle = strings.Join(append(append([]string(nil), r.SuitePath...), r.Title), " ")
		}
		failures = append(failures, TestFailure{
			TestName:   r.Title,
			FullTitle:  fullTitle,
			FilePath:   r.Spec,
			Message:    strings.TrimSpace(r.Err.Message),
			Diff:       r.Err.Diff,
			StackTrace: splitStack(r.Err.Estack),
			Duration:   r.Duration.Milliseconds(),
		})
	}
	return failures
}

// ResolvedState returns the test state, deriving it from the boolean flags
// when the reporter did not write one.
func (t *Test) ResolvedState() TestState {
	switch {
	case t.State != "":
		return t.State
	case t.Fail:
		return StateFailed
	case t.Pass:
		return StatePassed
	case t.Pending:
		return StatePending
	case t.Skipped:
		return StateSkipped
	}
	return ""
}

// splitStack keeps the "at ..." frames of a stack trace. The message lines
// before the first frame repeat the error message and are dropped, unless
// the trace has no frames at all.
func splitStack(stack string) []string {
	var lines, frames []string
	for _, line := range strings.Split(stack, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		lines = append(lines, line)
		if strings.HasPrefix(line, "at ") {
			frames = append(frames, line)
		}
	}
	if len(frames) == 0 {
		return lines
	}
	return frames
}
