// Package history keeps a table of past runs in MySQL.
package history

import (
	"context"
	"time"

	"e2erun/internal/domain"
)

// RunRecord is one row of the run history
type RunRecord struct {
	RunID      string
	Outcome    domain.Outcome
	Specs      int
	Tests      int
	Passed     int
	Failed     int
	Pending    int
	StartedAt  time.Time
	EndedAt    time.Time
	ReportPath string
}

// FromRun builds the history row of a finished run. raw may be nil.
func FromRun(runID string, raw *domain.RawResult, outcome domain.Outcome, reportPath string, endedAt time.Time) RunRecord {
	rec := RunRecord{
		RunID:      runID,
		Outcome:    outcome,
		StartedAt:  endedAt,
		EndedAt:    endedAt,
		ReportPath: reportPath,
	}
	if raw != nil {
		rec.Specs = raw.TotalSpecs
		rec.Tests = raw.TotalTests
		rec.Passed = raw.TotalPassed
		rec.Failed = raw.TotalFailed
		rec.Pending = raw.TotalPending
		if !raw.StartedAt.IsZero() {
			rec.StartedAt = raw.StartedAt
		}
		if !raw.EndedAt.IsZero() {
			rec.EndedAt = raw.EndedAt
		}
	}
	return rec
}

// Recorder stores and lists run records
type Recorder interface {
	Record(ctx context.Context, rec RunRecord) error
	Recent(ctx context.Context, limit int) ([]RunRecord, error)
	Close() error
}

// NopRecorder is used when no history database is configured
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, RunRecord) error { return nil }

func (NopRecorder) Recent(context.Context, int) ([]RunRecord, error) { return nil, nil }

func (NopRecorder) Close() error { return nil }
