package domain

import (
	"errors"
	"fmt"
)

// ErrNoArtifacts is returned when aggregation finds nothing to merge.
var ErrNoArtifacts = errors.New("no result artifacts matched")

// ConfigReadError means the persisted run configuration could not be read,
// parsed, overlaid or written back. It is fatal: no test is executed.
type ConfigReadError struct {
	Path string
	Err  error
}

func (e *ConfigReadError) Error() string {
	return fmt.Sprintf("run configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigReadError) Unwrap() error {
	return e.Err
}

// IsConfigReadError checks if the error is or wraps a ConfigReadError
func IsConfigReadError(err error) bool {
	var target *ConfigReadError
	return err != nil && errors.As(err, &target)
}

// InvalidOverrideError reports an environment override that cannot be applied
type InvalidOverrideError struct {
	Key   string
	Value string
	Err   error
}

func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Key, e.Err)
}

func (e *InvalidOverrideError) Unwrap() error {
	return e.Err
}

// IsInvalidOverrideError checks if the error is or wraps an InvalidOverrideError
func IsInvalidOverrideError(err error) bool {
	var target *InvalidOverrideError
	return err != nil && errors.As(err, &target)
}

// RunnerExecutionError means the test engine failed to start or crashed
// before producing results. Failing tests are never reported this way.
type RunnerExecutionError struct {
	Err error
}

func (e *RunnerExecutionError) Error() string {
	return fmt.Sprintf("runner execution failed: %v", e.Err)
}

func (e *RunnerExecutionError) Unwrap() error {
	return e.Err
}

// NewRunnerExecutionError creates a new RunnerExecutionError
func NewRunnerExecutionError(err error) *RunnerExecutionError {
	return &RunnerExecutionError{Err: err}
}

// IsRunnerExecutionError checks if the error is or wraps a RunnerExecutionError
func IsRunnerExecutionError(err error) bool {
	var target *RunnerExecutionError
	return err != nil && errors.As(err, &target)
}

// AggregationError means the result artifacts could not be merged
type AggregationError struct {
	Path string // offending artifact, empty when no artifact matched
	Err  error
}

func (e *AggregationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("aggregation failed: %v", e.Err)
	}
	return fmt.Sprintf("aggregation failed: %s: %v", e.Path, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// IsAggregationError checks if the error is or wraps an AggregationError
func IsAggregationError(err error) bool {
	var target *AggregationError
	return err != nil && errors.As(err, &target)
}

// ReportGenerationError means the HTML report could not be rendered or written
type ReportGenerationError struct {
	Path string
	Err  error
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("report generation failed: %v", e.Err)
}

func (e *ReportGenerationError) Unwrap() error {
	return e.Err
}

// IsReportGenerationError checks if the error is or wraps a ReportGenerationError
func IsReportGenerationError(err error) bool {
	var target *ReportGenerationError
	return err != nil && errors.As(err, &target)
}
