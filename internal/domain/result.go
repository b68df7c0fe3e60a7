package domain

import "time"

// SpecSummary is the per-spec slice of a raw run result
type SpecSummary struct {
	Spec     string        `json:"spec"`
	Artifact string        `json:"artifact"`
	Tests    int           `json:"tests"`
	Passes   int           `json:"passes"`
	Failures int           `json:"failures"`
	Pending  int           `json:"pending"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// BatchResult represents one engine process executed for a group of specs
type BatchResult struct {
	Index     int           // 1-based batch number
	Specs     []string      // Specs passed to the engine
	Dir       string        // Directory the engine wrote artifacts to
	ExitCode  int           // Process exit code, -1 when it never started
	Output    string        // Combined stdout/stderr of the engine
	Error     error         // Set when the batch is a runner failure
	Duration  time.Duration // Wall time of the process
	Summaries []SpecSummary // One entry per artifact found after exit
	Skipped   bool          // Not started because of fail-fast
}

// Failures sums the failing tests recorded by the batch artifacts.
func (b *BatchResult) Failures() int {
	n := 0
	for _, s := range b.Summaries {
		n += s.Failures
	}
	return n
}

// RawResult is what the runner invoker hands back once every engine process
// has settled.
type RawResult struct {
	RunID        string        `json:"run_id"`
	StartedAt    time.Time     `json:"started_at"`
	EndedAt      time.Time     `json:"ended_at"`
	TotalSpecs   int           `json:"total_specs"`
	TotalTests   int           `json:"total_tests"`
	TotalPassed  int           `json:"total_passed"`
	TotalFailed  int           `json:"total_failed"`
	TotalPending int           `json:"total_pending"`
	TotalSkipped int           `json:"total_skipped"`
	Specs        []SpecSummary `json:"specs"`
	Batches      []BatchResult `json:"-"`
}

// Add folds a spec summary into the totals.
func (r *RawResult) Add(s SpecSummary) {
	r.Specs = append(r.Specs, s)
	r.TotalSpecs++
	r.TotalTests += s.Tests
	r.TotalPassed += s.Passes
	r.TotalFailed += s.Failures
	r.TotalPending += s.Pending
	r.TotalSkipped += s.Skipped
}

// Duration is the wall time between the first engine start and the last exit.
func (r *RawResult) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// LastRunMeta contains metadata about the last run
type LastRunMeta struct {
	RunID           string  `json:"run_id"`
	Outcome         Outcome `json:"outcome"`
	TotalSpecs      int     `json:"total_specs"`
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	PendingTests    int     `json:"pending_tests"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Batches         int     `json:"batches"`
	ReportPath      string  `json:"report_path,omitempty"`
	Timestamp       string  `json:"timestamp"`
}

// LastRun is the persisted summary of the most recent run
type LastRun struct {
	Meta    LastRunMeta   `json:"meta"`
	Details []TestFailure `json:"details"`
}

// FailedSpecs returns the distinct spec paths that had at least one failure.
func (l *LastRun) FailedSpecs() []string {
	seen := make(map[string]bool)
	var specs []string
	for _, d := range l.Details {
		if d.FilePath == "" || seen[d.FilePath] {
			continue
		}
		seen[d.FilePath] = true
		specs = append(specs, d.FilePath)
	}
	return specs
}
