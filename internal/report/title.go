package report

import "time"

// TitleLayout renders e.g. "Tue. Mar 5, 2024 2:02 PM -05:00"
const TitleLayout = "Mon. Jan 2, 2006 3:04 PM -07:00"

// FormatTitle formats a run completion time as a report title.
func FormatTitle(t time.Time) string {
	return t.Format(TitleLayout)
}

// ResolveTitle picks the report title: the completion timestamp when
// requested and known, the fallback otherwise.
func ResolveTitle(fallback string, useTimestamp bool, completedAt time.Time) string {
	if useTimestamp && !completedAt.IsZero() {
		return FormatTitle(completedAt)
	}
	return fallback
}
