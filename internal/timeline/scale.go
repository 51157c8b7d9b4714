package timeline

import "time"

// Scale selects the column-label granularity. Bars are positioned by
// continuous percentage regardless of scale.
type Scale string

const (
	ScaleDay   Scale = "day"
	ScaleWeek  Scale = "week"
	ScaleMonth Scale = "month"
)

// Next cycles day -> week -> month -> day.
func (s Scale) Next() Scale {
	switch s {
	case ScaleDay:
		return ScaleWeek
	case ScaleWeek:
		return ScaleMonth
	default:
		return ScaleDay
	}
}

// Column is one labelled tick of the chart header.
type Column struct {
	Label   string
	LeftPct float64
}

// Columns generates header ticks for the window at the given scale.
func (w Window) Columns(scale Scale) []Column {
	total := w.Days()
	if total <= 0 {
		return nil
	}

	var cols []Column
	for t := scale.alignStart(w.Start); !t.After(w.End); t = scale.step(t) {
		if t.Before(w.Start) {
			continue
		}
		cols = append(cols, Column{
			Label:   scale.label(t),
			LeftPct: w.pct(t, total),
		})
	}
	return cols
}

func (s Scale) alignStart(t time.Time) time.Time {
	switch s {
	case ScaleWeek:
		// Back up to Monday.
		d := t
		for d.Weekday() != time.Monday {
			d = d.AddDate(0, 0, -1)
		}
		return d.Truncate(24 * time.Hour)
	case ScaleMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return t.Truncate(24 * time.Hour)
	}
}

func (s Scale) step(t time.Time) time.Time {
	switch s {
	case ScaleWeek:
		return t.AddDate(0, 0, 7)
	case ScaleMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func (s Scale) label(t time.Time) string {
	switch s {
	case ScaleMonth:
		return t.Format("Jan 06")
	case ScaleWeek:
		return t.Format("Jan 2")
	default:
		return t.Format("01/02")
	}
}
