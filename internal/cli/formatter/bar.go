package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	barBlock    = '█'
	todayMarker = '┆'
)

// GanttBar renders one timeline row of the given cell width. leftPct
// and widthPct position the bar as percentages of the row; a negative
// leftPct renders no bar (rows without both dates). todayPct places
// the current-date marker, negative when outside the window. A bar of
// any nonzero width occupies at least one cell so milestones stay
// visible.
func GanttBar(cells int, leftPct, widthPct, todayPct float64, style lipgloss.Style) string {
	if cells <= 0 {
		return ""
	}

	row := make([]rune, cells)
	for i := range row {
		row[i] = ' '
	}

	if leftPct >= 0 {
		start := clampCell(leftPct, cells)
		span := int(widthPct / 100 * float64(cells))
		if span < 1 {
			span = 1
		}
		for i := start; i < start+span && i < cells; i++ {
			row[i] = barBlock
		}
	}

	// The marker never overwrites a bar cell.
	if todayPct >= 0 {
		if pos := clampCell(todayPct, cells); row[pos] == ' ' {
			row[pos] = todayMarker
		}
	}

	return styleRow(row, style)
}

func clampCell(pct float64, cells int) int {
	pos := int(pct / 100 * float64(cells))
	if pos >= cells {
		pos = cells - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// styleRow colors bar runs with the given style and the today marker
// blue, leaving whitespace unstyled.
func styleRow(row []rune, style lipgloss.Style) string {
	var b strings.Builder
	var run []rune
	flush := func() {
		if len(run) > 0 {
			b.WriteString(style.Render(string(run)))
			run = run[:0]
		}
	}
	for _, r := range row {
		switch r {
		case barBlock:
			run = append(run, r)
		case todayMarker:
			flush()
			b.WriteString(StyleBlue.Render(string(r)))
		default:
			flush()
			b.WriteRune(r)
		}
	}
	flush()
	return b.String()
}
