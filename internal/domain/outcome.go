package domain

// Outcome is the terminal decision of a run
type Outcome string

const (
	OutcomePassed       Outcome = "passed"
	OutcomeTestsFailed  Outcome = "tests_failed"
	OutcomeRunnerFailed Outcome = "runner_failed"
	OutcomeReportFailed Outcome = "report_failed"
)

// Failed reports whether the outcome should fail a CI job.
func (o Outcome) Failed() bool {
	return o != OutcomePassed
}

// DecideOutcome derives the outcome of a run. Infrastructure failures take
// precedence over test failures so that logs point at the real cause.
func DecideOutcome(raw *RawResult, runnerErr, reportErr error) Outcome {
	switch {
	case runnerErr != nil:
		return OutcomeRunnerFailed
	case reportErr != nil:
		return OutcomeReportFailed
	case raw == nil:
		return OutcomeRunnerFailed
	case raw.TotalFailed > 0:
		return OutcomeTestsFailed
	}
	return OutcomePassed
}
