// Package exitcodes maps run outcomes to process exit codes.
package exitcodes

import "e2erun/internal/domain"

const (
	// Success is returned when every test passed
	Success = 0
	// TestFailure is returned for failing tests and for runner or report failures
	TestFailure = 1
)

// ForOutcome returns the exit code of an outcome.
func ForOutcome(o domain.Outcome) int {
	if o.Failed() {
		return TestFailure
	}
	return Success
}
