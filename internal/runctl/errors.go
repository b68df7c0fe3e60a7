package runctl

import (
	"errors"
	"fmt"

	"e2erun/internal/domain"
	"e2erun/internal/exitcodes"
)

// OutcomeError is returned to the CLI for every run that did not pass. It
// carries the process exit code.
type OutcomeError struct {
	Outcome domain.Outcome
	Err     error
}

func (e *OutcomeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("run %s: %v", e.Outcome, e.Err)
	}
	return fmt.Sprintf("run %s", e.Outcome)
}

func (e *OutcomeError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for the outcome
func (e *OutcomeError) ExitCode() int {
	return exitcodes.ForOutcome(e.Outcome)
}

// ExitCode returns the exit code for an error returned by a command: 0 for
// nil, the outcome's code for an OutcomeError, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return exitcodes.Success
	}
	var oe *OutcomeError
	if errors.As(err, &oe) {
		return oe.ExitCode()
	}
	return exitcodes.TestFailure
}
