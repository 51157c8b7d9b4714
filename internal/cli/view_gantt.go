package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/p6tools/p6view/internal/cli/formatter"
	"github.com/p6tools/p6view/internal/domain"
	"github.com/p6tools/p6view/internal/hierarchy"
	"github.com/p6tools/p6view/internal/timeline"
)

// ganttView renders the schedule's hierarchy as timeline bars. It
// shares the activity table's data and expansion state so collapse
// choices carry over between the two views.
type ganttView struct {
	state *SharedState
	table *activityTableView
	scale timeline.Scale

	cursor int
	offset int

	// now is injected for tests; zero means time.Now at render.
	now time.Time
}

func newGanttView(state *SharedState, table *activityTableView) *ganttView {
	return &ganttView{
		state: state,
		table: table,
		scale: timeline.ScaleWeek,
	}
}

func (v *ganttView) ID() ViewID    { return ViewGantt }
func (v *ganttView) Title() string { return "Timeline" }

func (v *ganttView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/collapse")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day scale")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week scale")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month scale")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle scale")),
	}
}

func (v *ganttView) Init() tea.Cmd { return nil }

func (v *ganttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		rows := v.table.visibleRows()
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(rows)-1 {
				v.cursor++
			}
		case "pgup":
			v.cursor = max(0, v.cursor-v.pageSize())
		case "pgdown":
			v.cursor = min(len(rows)-1, v.cursor+v.pageSize())
		case "enter", " ":
			if v.cursor < len(rows) {
				row := rows[v.cursor]
				if row.Kind != domain.KindActivity {
					v.table.expanded.Toggle(row.ID)
				}
			}
		case "d":
			v.scale = timeline.ScaleDay
		case "w":
			v.scale = timeline.ScaleWeek
		case "m":
			v.scale = timeline.ScaleMonth
		case "t":
			v.scale = v.scale.Next()
		}
	}
	return v, nil
}

// ── rendering ────────────────────────────────────────────────────────────────

const ganttLabelWidth = 28

func (v *ganttView) pageSize() int {
	h := v.state.ContentHeight() - 2 // column header + spacer
	if h < 1 {
		return 1
	}
	return h
}

// barCells is the width of the timeline area in terminal cells.
func (v *ganttView) barCells() int {
	c := v.state.Width - ganttLabelWidth - 3
	if c < 10 {
		c = 10
	}
	return c
}

func (v *ganttView) View() string {
	rows := v.table.visibleRows()
	if len(rows) == 0 {
		return "\n  " + formatter.Dim("No activities to draw.")
	}

	window, ok := timeline.NewWindow(v.table.activities)
	if !ok {
		return "\n  " + formatter.Dim("No dated activities in this schedule.")
	}

	now := v.now
	if now.IsZero() {
		now = time.Now()
	}
	todayPct := -1.0
	if pct, inside := window.TodayPct(now); inside {
		todayPct = pct
	}

	cells := v.barCells()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", ganttLabelWidth+3))
	b.WriteString(v.renderColumnHeader(window, cells))
	b.WriteString("\n")

	page := v.pageSize()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+page {
		v.offset = v.cursor - page + 1
	}
	end := min(len(rows), v.offset+page)

	for i := v.offset; i < end; i++ {
		b.WriteString(v.renderRow(rows[i], i == v.cursor, window, cells, todayPct))
		b.WriteByte('\n')
	}

	if len(rows) > page {
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("%d–%d of %d rows", v.offset+1, end, len(rows))) + "\n")
	}

	return b.String()
}

// renderColumnHeader lays the scale labels over the bar area.
func (v *ganttView) renderColumnHeader(window timeline.Window, cells int) string {
	header := make([]rune, cells)
	for i := range header {
		header[i] = ' '
	}
	for _, col := range window.Columns(v.scale) {
		pos := int(col.LeftPct / 100 * float64(cells))
		label := []rune(col.Label)
		if pos < 0 || pos >= cells {
			continue
		}
		for j, r := range label {
			if pos+j >= cells {
				break
			}
			// Leave a gap between adjacent labels.
			if header[pos+j] != ' ' {
				break
			}
			header[pos+j] = r
		}
	}
	return formatter.Dim(string(header))
}

func (v *ganttView) renderRow(row hierarchy.Node, isCursor bool, window timeline.Window, cells int, todayPct float64) string {
	cursor := "  "
	if isCursor {
		cursor = formatter.StyleGreen.Render("▸ ")
	}

	indent := strings.Repeat(" ", row.Depth)
	labelWidth := ganttLabelWidth - len(indent)

	var label, bar string
	switch row.Kind {
	case domain.KindActivity:
		a := row.Activity
		label = formatter.StatusStyle(a.Status()).Render(formatter.Pad(a.TaskName, max(labelWidth, 8)))
		style := formatter.StyleBlue
		if a.IsCritical() {
			style = formatter.StyleRed
		} else if a.Status() == domain.StatusCompleted {
			style = formatter.StyleGreen
		}
		left, width, ok := window.Span(a.EarlyStart, a.EarlyEnd)
		if !ok {
			left = -1
		}
		bar = formatter.GanttBar(cells, left, width, todayPct, style)
	default:
		label = formatter.StyleBold.Render(formatter.Pad(row.Name, max(labelWidth, 8)))
		left, width, ok := window.Span(row.Stats.Start, row.Stats.End)
		if !ok {
			left = -1
		}
		bar = formatter.GanttBar(cells, left, width, todayPct, formatter.StyleDim)
	}

	return cursor + indent + label + " " + bar
}
