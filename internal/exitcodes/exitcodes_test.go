package exitcodes

import (
	"testing"

	"e2erun/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestForOutcome(t *testing.T) {
	assert.Equal(t, Success, ForOutcome(domain.OutcomePassed))
	assert.Equal(t, TestFailure, ForOutcome(domain.OutcomeTestsFailed))
	assert.Equal(t, TestFailure, ForOutcome(domain.OutcomeRunnerFailed))
	assert.Equal(t, TestFailure, ForOutcome(domain.OutcomeReportFailed))
}
