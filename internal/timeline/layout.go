package timeline

import "time"

// MinBarWidthPct keeps zero and near-zero duration bars (milestones)
// visible and selectable.
const MinBarWidthPct = 0.5

// Span positions a bar for the given date pair as percentages of the
// window's day span. ok is false when either date is missing; such
// rows render no bar at all rather than a misleading zero-duration
// one. Width is clamped to MinBarWidthPct and the bar is clipped to
// the window.
func (w Window) Span(start, end *time.Time) (leftPct, widthPct float64, ok bool) {
	if start == nil || end == nil {
		return 0, 0, false
	}
	total := w.Days()
	if total <= 0 {
		return 0, 0, false
	}

	left := w.pct(*start, total)
	right := w.pct(*end, total)
	if right < left {
		right = left
	}

	width := right - left
	if width < MinBarWidthPct {
		width = MinBarWidthPct
	}
	if left+width > 100 {
		left = 100 - width
	}
	if left < 0 {
		left = 0
	}
	return left, width, true
}

// TodayPct returns the offset of the today marker using the same
// formula as bars. ok is false when now falls outside the window; the
// marker is only drawn inside it.
func (w Window) TodayPct(now time.Time) (float64, bool) {
	if !w.Contains(now) {
		return 0, false
	}
	return w.pct(now, w.Days()), true
}

func (w Window) pct(t time.Time, totalDays float64) float64 {
	days := t.Sub(w.Start).Hours() / 24
	p := days / totalDays * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
