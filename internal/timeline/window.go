package timeline

import (
	"time"

	"github.com/p6tools/p6view/internal/domain"
)

// PadDays is the margin added on each side of the activity span so
// bars never touch the chart edges.
const PadDays = 30

// Window is the bounded time range a Gantt chart renders. All bar
// math is continuous-percentage against this range; the scale
// granularity only changes column labels.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow derives the chart window from the min early start and max
// early end across all activities, padded by PadDays on each side.
// Activities missing either date are ignored. ok is false when no
// activity carries a usable date pair.
func NewWindow(activities []*domain.Activity) (Window, bool) {
	var start, end time.Time
	found := false
	for _, a := range activities {
		if !a.HasDates() {
			continue
		}
		if !found || a.EarlyStart.Before(start) {
			start = *a.EarlyStart
		}
		if !found || a.EarlyEnd.After(end) {
			end = *a.EarlyEnd
		}
		found = true
	}
	if !found {
		return Window{}, false
	}
	return Window{
		Start: start.AddDate(0, 0, -PadDays),
		End:   end.AddDate(0, 0, PadDays),
	}, true
}

// Days returns the total day span of the window.
func (w Window) Days() float64 {
	return w.End.Sub(w.Start).Hours() / 24
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
