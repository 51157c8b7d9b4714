package domain

import "time"

// Activity is a schedulable task imported from a P6 schedule. Instances
// arrive from the API and are treated as immutable by the viewer.
type Activity struct {
	TaskID   string
	TaskName string
	WBSID    string

	DurationDays   float64
	TotalFloatDays float64
	FreeFloatDays  float64
	ProgressPct    float64

	EarlyStart  *time.Time
	EarlyEnd    *time.Time
	LateStart   *time.Time
	LateEnd     *time.Time
	ActualStart *time.Time
	ActualEnd   *time.Time

	TaskType   string
	StatusCode string

	// Optional enrichment from the P6 import.
	ActivityCodes map[string]string
	UDFValues     map[string]string
	ResourceNames string
}

// Status derives the display status from progress, matching the
// server's filter buckets.
func (a *Activity) Status() ActivityStatus {
	switch {
	case a.ProgressPct <= 0:
		return StatusNotStarted
	case a.ProgressPct >= 100:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// IsCritical reports whether the activity sits on the critical path.
// Float is precomputed by the scheduling tool; zero or negative total
// float marks the activity critical.
func (a *Activity) IsCritical() bool {
	return a.TotalFloatDays <= 0
}

// HasDates reports whether both early dates are present. Activities
// without both dates are excluded from date-range rollups and are not
// positioned on the timeline.
func (a *Activity) HasDates() bool {
	return a.EarlyStart != nil && a.EarlyEnd != nil
}

// SortStart returns the early start for ordering purposes. Activities
// with no start date sort first via the zero time.
func (a *Activity) SortStart() time.Time {
	if a.EarlyStart == nil {
		return time.Time{}
	}
	return *a.EarlyStart
}
