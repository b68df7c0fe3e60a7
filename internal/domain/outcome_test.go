package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideOutcome(t *testing.T) {
	runnerErr := NewRunnerExecutionError(errors.New("engine crashed"))
	reportErr := &ReportGenerationError{Err: errors.New("disk full")}

	tests := []struct {
		name      string
		raw       *RawResult
		runnerErr error
		reportErr error
		expected  Outcome
	}{
		{"all passed", &RawResult{TotalPassed: 8}, nil, nil, OutcomePassed},
		{"some failed", &RawResult{TotalPassed: 8, TotalFailed: 3}, nil, nil, OutcomeTestsFailed},
		{"runner rejected", nil, runnerErr, nil, OutcomeRunnerFailed},
		{"runner rejected with partial result", &RawResult{TotalPassed: 4}, runnerErr, nil, OutcomeRunnerFailed},
		{"report failed after passing run", &RawResult{TotalPassed: 8}, nil, reportErr, OutcomeReportFailed},
		{"runner error wins over report error", nil, runnerErr, reportErr, OutcomeRunnerFailed},
		{"report error wins over test failures", &RawResult{TotalFailed: 1}, nil, reportErr, OutcomeReportFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideOutcome(tt.raw, tt.runnerErr, tt.reportErr)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected != OutcomePassed, got.Failed())
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NewRunnerExecutionError(errors.New("boom")))
	assert.True(t, IsRunnerExecutionError(wrapped))
	assert.False(t, IsAggregationError(wrapped))

	agg := &AggregationError{Err: ErrNoArtifacts}
	assert.True(t, IsAggregationError(agg))
	assert.ErrorIs(t, agg, ErrNoArtifacts)
	assert.Equal(t, "aggregation failed: no result artifacts matched", agg.Error())

	cfg := &ConfigReadError{Path: "cypress.json", Err: errors.New("missing")}
	assert.True(t, IsConfigReadError(cfg))
}

func TestLastRun_FailedSpecs(t *testing.T) {
	run := LastRun{Details: []TestFailure{
		{FilePath: "integration/a.js"},
		{FilePath: "integration/b.js"},
		{FilePath: "integration/a.js"},
		{FilePath: ""},
	}}
	assert.Equal(t, []string{"integration/a.js", "integration/b.js"}, run.FailedSpecs())
}

func TestRunConfiguration_ProjectID(t *testing.T) {
	cfg := RunConfiguration{KeyTestProject: TestProject{ID: 42}}
	id, ok := cfg.ProjectID()
	assert.True(t, ok)
	assert.Equal(t, 42, id)

	cfg = RunConfiguration{KeyTestProject: map[string]any{"id": float64(7)}}
	id, ok = cfg.ProjectID()
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	_, ok = RunConfiguration{}.ProjectID()
	assert.False(t, ok)
}
