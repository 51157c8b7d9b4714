package formatter

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// DateShort formats a nullable date as "Jan 02 06", or a dim dash when
// absent.
func DateShort(t *time.Time) string {
	if t == nil {
		return Dim("—")
	}
	return t.Format("Jan 02 06")
}

// DateRange formats a rollup date span, degrading gracefully when one
// or both ends are missing.
func DateRange(start, end *time.Time) string {
	if start == nil && end == nil {
		return Dim("no dates")
	}
	return DateShort(start) + Dim(" → ") + DateShort(end)
}

// Truncate cuts s to the given display width, appending an ellipsis
// when anything was removed. Width is measured in terminal cells, so
// wide runes count double.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// Pad right-pads s with spaces to the given display width, truncating
// first when it is too long.
func Pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
