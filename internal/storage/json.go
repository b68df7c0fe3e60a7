package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"e2erun/internal/domain"
)

// NewLastRun builds the persisted summary of a run. raw may be nil when the
// engine never produced a result; the run id is recorded either way.
func NewLastRun(runID string, raw *domain.RawResult, failures []domain.TestFailure, outcome domain.Outcome, reportPath string, now time.Time) *domain.LastRun {
	meta := domain.LastRunMeta{
		RunID:      runID,
		Outcome:    outcome,
		ReportPath: reportPath,
		Timestamp:  now.Format(time.RFC3339),
	}
	if raw != nil {
		d := raw.Duration()
		meta.TotalSpecs = raw.TotalSpecs
		meta.TotalTests = raw.TotalTests
		meta.PassedTests = raw.TotalPassed
		meta.FailedTests = raw.TotalFailed
		meta.PendingTests = raw.TotalPending
		meta.Duration = d.String()
		meta.DurationSeconds = d.Seconds()
		meta.Batches = len(raw.Batches)
	}
	if failures == nil {
		failures = []domain.TestFailure{}
	}
	return &domain.LastRun{Meta: meta, Details: failures}
}

// Save writes the run summary and its failures to the configured JSON output file.
func (s *JSONStorage) Save(runID string, raw *domain.RawResult, failures []domain.TestFailure, outcome domain.Outcome, reportPath string) error {
	return s.SaveOutput(NewLastRun(runID, raw, failures, outcome, reportPath, time.Now()))
}

// Load reads the last run from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.LastRun, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.LastRun
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.LastRun) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
