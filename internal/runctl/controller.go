// Package runctl sequences a run: overlay the run configuration, invoke the
// engine, aggregate the artifacts, render the report and decide the outcome.
package runctl

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"e2erun/internal/domain"
	"e2erun/internal/execution"
	"e2erun/internal/history"
	"e2erun/internal/logging"
	"e2erun/internal/report"
	"e2erun/internal/storage"
)

// Overlay applies environment overrides to the persisted run configuration
type Overlay interface {
	Apply(path string) (domain.RunConfiguration, []string, error)
}

// Aggregator merges result artifacts
type Aggregator interface {
	Merge(patterns ...string) (*domain.AggregatedResult, error)
}

// Reporter renders an aggregate to disk
type Reporter interface {
	Write(agg *domain.AggregatedResult, opts report.Options, htmlPath, jsonPath string) error
}

// Deps are the collaborators of a Controller. Storage and History are optional.
type Deps struct {
	Overlay    Overlay
	Executor   execution.Executor
	Aggregator Aggregator
	Reporter   Reporter
	Storage    storage.Storage
	History    history.Recorder
	Logger     *logging.Logger
}

// Options describe one run
type Options struct {
	RunConfigPath string
	SkipOverlay   bool
	Specs         []string
	ResultsDir    string
	Report        ReportOptions
}

// ReportOptions control aggregation output
type ReportOptions struct {
	Title          string
	TimestampTitle bool
	HTMLPath       string
	JSONPath       string
}

// Result is everything known about a finished run
type Result struct {
	RunID      string
	Outcome    domain.Outcome
	Raw        *domain.RawResult
	Aggregate  *domain.AggregatedResult
	ReportPath string
	RunnerErr  error
	ReportErr  error
}

// Err returns an OutcomeError unless the run passed.
func (r *Result) Err() error {
	if !r.Outcome.Failed() {
		return nil
	}
	err := r.RunnerErr
	if err == nil {
		err = r.ReportErr
	}
	return &OutcomeError{Outcome: r.Outcome, Err: err}
}

// Controller drives a run through its states
type Controller struct {
	deps     Deps
	logger   *logging.Logger
	newRunID func() string
	now      func() time.Time

	state State
	trace []State
}

// New creates a Controller
func New(deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if deps.History == nil {
		deps.History = history.NopRecorder{}
	}
	return &Controller{
		deps:     deps,
		logger:   logger,
		newRunID: uuid.NewString,
		now:      time.Now,
		state:    StateIdle,
	}
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Trace returns the states visited by the last run, in order.
func (c *Controller) Trace() []State {
	return append([]State(nil), c.trace...)
}

func (c *Controller) transition(to State) {
	c.logger.Debug("state transition", "from", c.state, "to", to)
	c.state = to
	c.trace = append(c.trace, to)
}

// Run executes one run. The returned error is non-nil only when the run
// configuration could not be written, in which case no test was executed.
// Every other failure is reflected in Result.Outcome.
func (c *Controller) Run(ctx context.Context, opts Options) (*Result, error) {
	c.state = StateIdle
	c.trace = []State{StateIdle}
	runID := c.newRunID()
	logger := c.logger.With("run_id", runID)

	if opts.SkipOverlay {
		logger.Debug("run configuration overlay skipped")
	} else {
		_, applied, err := c.deps.Overlay.Apply(opts.RunConfigPath)
		if err != nil {
			logger.Error("run configuration could not be written", "kind", "config_read_failed", "path", opts.RunConfigPath, "err", err)
			c.transition(StateTerminated)
			return nil, err
		}
		logger.Info("run configuration written", "path", opts.RunConfigPath, "overrides", applied)
	}
	c.transition(StateConfigWritten)

	runDir := filepath.Join(opts.ResultsDir, runID)
	c.transition(StateRunnerInvoked)
	logger.Info("starting test engine", "specs", len(opts.Specs), "results", runDir)
	raw, runErr := c.deps.Executor.Execute(ctx, opts.Specs, runDir)

	result := &Result{RunID: runID, Raw: raw, RunnerErr: runErr}
	if runErr != nil {
		c.transition(StateRunnerFailed)
		logger.Error("test engine failed", "kind", domain.OutcomeRunnerFailed, "err", runErr)
		logBatchOutput(logger, raw)
	} else {
		c.transition(StateRunnerSucceeded)
		logRawResult(logger, raw)
	}

	completedAt := c.now()
	if raw != nil && !raw.EndedAt.IsZero() {
		completedAt = raw.EndedAt
	}
	ropts := opts.Report
	agg, reportErr := c.Report(completedAt, ropts, filepath.Join(runDir, "batch-*", "*.json"))
	result.Aggregate = agg
	result.ReportErr = reportErr
	switch {
	case reportErr == nil:
		result.ReportPath = ropts.HTMLPath
		c.transition(StateReportGenerated)
		logger.Info("report written", "path", ropts.HTMLPath)
	case runErr != nil:
		logger.Warn("report could not be generated after engine failure", "err", reportErr)
	default:
		logger.Error("report generation failed", "kind", domain.OutcomeReportFailed, "err", reportErr)
	}

	result.Outcome = domain.DecideOutcome(raw, runErr, reportErr)
	c.persist(ctx, logger, result, completedAt)

	c.transition(StateTerminated)
	logger.Info("run finished", "outcome", result.Outcome, "exit_code", ExitCode(result.Err()))
	return result, nil
}

// Report aggregates the artifacts matched by patterns and writes the report.
// The title is the completion timestamp when requested, the configured title
// otherwise.
func (c *Controller) Report(completedAt time.Time, opts ReportOptions, patterns ...string) (*domain.AggregatedResult, error) {
	agg, err := c.deps.Aggregator.Merge(patterns...)
	if err != nil {
		return nil, err
	}
	if completedAt.IsZero() {
		completedAt = agg.Stats.End
	}
	title := report.ResolveTitle(opts.Title, opts.TimestampTitle, completedAt)
	if err := c.deps.Reporter.Write(agg, report.Options{Title: title}, opts.HTMLPath, opts.JSONPath); err != nil {
		return agg, err
	}
	return agg, nil
}

// persist saves the last-run summary and the history row. Failures are
// only logged.
func (c *Controller) persist(ctx context.Context, logger *logging.Logger, result *Result, endedAt time.Time) {
	var failures []domain.TestFailure
	if result.Aggregate != nil {
		failures = result.Aggregate.Failures()
	}
	if c.deps.Storage != nil {
		if err := c.deps.Storage.Save(result.RunID, result.Raw, failures, result.Outcome, result.ReportPath); err != nil {
			logger.Warn("failed to save last run", "err", err)
		}
	}
	rec := history.FromRun(result.RunID, result.Raw, result.Outcome, result.ReportPath, endedAt)
	if err := c.deps.History.Record(ctx, rec); err != nil {
		logger.Warn("failed to record run history", "err", err)
	}
}

func logRawResult(logger *logging.Logger, raw *domain.RawResult) {
	if raw == nil {
		return
	}
	logger.Info("test engine finished",
		"specs", raw.TotalSpecs,
		"tests", raw.TotalTests,
		"passed", raw.TotalPassed,
		"failed", raw.TotalFailed,
		"pending", raw.TotalPending,
		"skipped", raw.TotalSkipped,
		"batches", len(raw.Batches),
		"duration", raw.Duration().Round(time.Millisecond),
	)
	for _, s := range raw.Specs {
		logger.Debug("spec result", "spec", s.Spec, "tests", s.Tests, "passed", s.Passes, "failed", s.Failures, "pending", s.Pending)
	}
}

const outputTail = 2000

func logBatchOutput(logger *logging.Logger, raw *domain.RawResult) {
	if raw == nil {
		return
	}
	for _, b := range raw.Batches {
		if b.Error == nil {
			continue
		}
		out := b.Output
		if len(out) > outputTail {
			out = out[len(out)-outputTail:]
		}
		logger.Error("batch failed", "kind", domain.OutcomeRunnerFailed, "batch", b.Index, "exit_code", b.ExitCode, "err", b.Error, "output", out)
	}
}
