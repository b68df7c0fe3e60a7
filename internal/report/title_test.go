package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTitle(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	at := time.Date(2024, 3, 5, 14, 2, 0, 0, loc)
	assert.Equal(t, "Tue. Mar 5, 2024 2:02 PM -05:00", FormatTitle(at))
}

func TestResolveTitle(t *testing.T) {
	at := time.Date(2024, 12, 25, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "Wed. Dec 25, 2024 9:30 AM +00:00", ResolveTitle("E2E", true, at))
	assert.Equal(t, "E2E", ResolveTitle("E2E", false, at))
	assert.Equal(t, "E2E", ResolveTitle("E2E", true, time.Time{}))
}
