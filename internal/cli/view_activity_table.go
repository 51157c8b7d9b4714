package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/p6tools/p6view/internal/api"
	"github.com/p6tools/p6view/internal/cli/formatter"
	"github.com/p6tools/p6view/internal/domain"
	"github.com/p6tools/p6view/internal/hierarchy"
)

// searchDebounce is how long the search input must be idle before a
// fetch is issued.
const searchDebounce = 300 * time.Millisecond

// activitiesLoadedMsg carries a fetched activity set. seq ties the
// response to the request that produced it.
type activitiesLoadedMsg struct {
	seq  uint64
	page *api.ActivityPage
	err  error
}

// searchDebounceMsg fires after the debounce interval; stale timers
// (older seq) are ignored.
type searchDebounceMsg struct{ seq int }

// statusCycle is the order the s key steps through.
var statusCycle = []string{
	domain.StatusAll,
	string(domain.StatusNotStarted),
	string(domain.StatusInProgress),
	string(domain.StatusCompleted),
}

// activityTableView shows the WBS hierarchy of the active schedule
// with per-level rollups, server-side search, and a status filter.
type activityTableView struct {
	state *SharedState

	activities []*domain.Activity
	wbs        []*domain.WBSNode
	info       api.ProjectInfo

	expanded    *hierarchy.ExpandedSet
	rows        []hierarchy.Node
	rowsVersion uint64
	rowsStale   bool // data changed, rows must be rebuilt

	cursor  int
	offset  int
	loading bool
	err     error

	// Search & filtering. fetchSeq orders responses: only the newest
	// issued request may update the view, so a slow early response can
	// never overwrite a later one.
	searching   bool
	search      string
	status      string
	debounceSeq int
	fetchSeq    uint64
	defaulted   bool
}

func newActivityTableView(state *SharedState) *activityTableView {
	return &activityTableView{
		state:    state,
		expanded: hierarchy.NewExpandedSet(),
		status:   domain.StatusAll,
		loading:  true,
	}
}

func (v *activityTableView) ID() ViewID { return ViewActivityTable }
func (v *activityTableView) Title() string {
	if v.state.ActiveScheduleName != "" {
		return v.state.ActiveScheduleName
	}
	return "Activities"
}

func (v *activityTableView) capturesInput() bool { return v.searching }

func (v *activityTableView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/collapse")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status: "+v.status)),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gantt")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *activityTableView) Init() tea.Cmd {
	return v.fetch()
}

// fetch issues a request stamped with the next sequence number.
func (v *activityTableView) fetch() tea.Cmd {
	v.fetchSeq++
	seq := v.fetchSeq
	app := v.state.App
	scheduleID := v.state.ActiveScheduleID
	q := v.state.ActivityQuery()
	q.Search = v.search
	q.Status = v.status
	return func() tea.Msg {
		page, err := app.API.GetAllActivities(context.Background(), scheduleID, q)
		return activitiesLoadedMsg{seq: seq, page: page, err: err}
	}
}

func (v *activityTableView) buildOpts() hierarchy.Options {
	name := v.info.ProjectName
	if name == "" {
		name = v.state.ActiveProjectName
	}
	return hierarchy.Options{
		ProjectName: name,
		ProjectID:   strconv.Itoa(v.state.ActiveProjectID),
		ScheduleID:  strconv.Itoa(v.state.ActiveScheduleID),
	}
}

// visibleRows returns the flattened hierarchy, rebuilding only when
// the data or the expansion set changed since the last build.
func (v *activityTableView) visibleRows() []hierarchy.Node {
	if v.rowsStale || v.expanded.Version() != v.rowsVersion {
		v.rows = hierarchy.Build(v.activities, v.wbs, v.expanded, v.buildOpts())
		v.rowsVersion = v.expanded.Version()
		v.rowsStale = false
	}
	return v.rows
}

func (v *activityTableView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesLoadedMsg:
		if msg.seq != v.fetchSeq {
			return v, nil // superseded by a newer request
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.activities = msg.page.Activities
		v.wbs = msg.page.WBS
		v.info = msg.page.ProjectInfo
		v.rowsStale = true
		if !v.defaulted {
			hierarchy.ExpandDefaults(v.expanded, v.wbs, v.buildOpts())
			v.defaulted = true
		}
		if rows := v.visibleRows(); v.cursor >= len(rows) {
			v.cursor = max(0, len(rows)-1)
		}
		return v, nil

	case searchDebounceMsg:
		if msg.seq != v.debounceSeq {
			return v, nil // a newer keystroke restarted the timer
		}
		v.loading = true
		return v, v.fetch()

	case refreshViewMsg:
		v.loading = true
		return v, v.fetch()

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *activityTableView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := v.visibleRows()

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
	case "home":
		v.cursor = 0
	case "end":
		v.cursor = max(0, len(rows)-1)
	case "enter", " ":
		if v.cursor < len(rows) {
			row := rows[v.cursor]
			if row.Kind != domain.KindActivity {
				v.expanded.Toggle(row.ID)
			}
		}
	case "/":
		v.searching = true
	case "s":
		v.status = nextStatus(v.status)
		v.cursor = 0
		v.loading = true
		return v, v.fetch()
	case "g":
		return v, pushView(newGanttView(v.state, v))
	case "r":
		v.loading = true
		return v, v.fetch()
	}
	return v, nil
}

func (v *activityTableView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Cancel the search entirely and restore the unfiltered list.
		v.searching = false
		if v.search != "" {
			v.search = ""
			v.cursor = 0
			v.loading = true
			return v, v.fetch()
		}
		return v, nil
	case tea.KeyEnter:
		v.searching = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.search) > 0 {
			v.search = v.search[:len(v.search)-1]
			return v, v.restartDebounce()
		}
	default:
		if len(msg.String()) == 1 {
			v.search += msg.String()
			return v, v.restartDebounce()
		}
	}
	return v, nil
}

// restartDebounce invalidates any pending timer and starts a new one.
func (v *activityTableView) restartDebounce() tea.Cmd {
	v.cursor = 0
	v.debounceSeq++
	seq := v.debounceSeq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func nextStatus(cur string) string {
	for i, s := range statusCycle {
		if s == cur {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return domain.StatusAll
}

// ── rendering ────────────────────────────────────────────────────────────────

// pageSize is the number of rows that fit on screen, minus the
// search/filter header line.
func (v *activityTableView) pageSize() int {
	h := v.state.ContentHeight() - 2
	if h < 1 {
		return 1
	}
	return h
}

func (v *activityTableView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	// Search / filter line
	if v.searching {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.search + "█")
	} else {
		var parts []string
		if v.search != "" {
			parts = append(parts, formatter.StyleYellow.Render("/"+v.search))
		}
		if v.status != domain.StatusAll {
			parts = append(parts, formatter.StyleBlue.Render("["+v.status+"]"))
		}
		if len(parts) > 0 {
			b.WriteString("  " + strings.Join(parts, " "))
		}
	}
	b.WriteString("\n")

	if v.loading {
		b.WriteString("  " + formatter.Dim("Loading activities...") + "\n")
		return b.String()
	}
	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
		return b.String()
	}

	rows := v.visibleRows()
	if len(rows) == 0 {
		b.WriteString("  " + formatter.Dim("No activities match.") + "\n")
		return b.String()
	}

	// Scroll window around the cursor.
	page := v.pageSize()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+page {
		v.offset = v.cursor - page + 1
	}
	end := min(len(rows), v.offset+page)

	for i := v.offset; i < end; i++ {
		b.WriteString(v.renderRow(rows[i], i == v.cursor))
		b.WriteByte('\n')
	}

	if len(rows) > page {
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("%d–%d of %d rows", v.offset+1, end, len(rows))) + "\n")
	}

	if v.cursor < len(rows) {
		if detail := activityDetailLine(rows[v.cursor]); detail != "" {
			b.WriteString("  " + detail + "\n")
		}
	}

	return b.String()
}

// activityDetailLine summarizes the selected activity's secondary
// fields: late/actual dates and assigned resources.
func activityDetailLine(row hierarchy.Node) string {
	if row.Kind != domain.KindActivity {
		return ""
	}
	a := row.Activity

	var parts []string
	if a.LateStart != nil || a.LateEnd != nil {
		parts = append(parts, "late "+formatter.DateRange(a.LateStart, a.LateEnd))
	}
	if a.ActualStart != nil || a.ActualEnd != nil {
		parts = append(parts, "actual "+formatter.DateRange(a.ActualStart, a.ActualEnd))
	}
	if a.ResourceNames != "" {
		parts = append(parts, formatter.Dim(formatter.Truncate(a.ResourceNames, 40)))
	}
	if a.TaskType != "" {
		parts = append(parts, formatter.Dim(a.TaskType))
	}
	if len(parts) == 0 {
		return ""
	}
	return formatter.Dim(a.TaskID+":") + " " + strings.Join(parts, "  ")
}

const activityNameWidth = 36

func (v *activityTableView) renderRow(row hierarchy.Node, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = formatter.StyleGreen.Render("▸ ")
	}

	indent := strings.Repeat("  ", row.Depth)

	if row.Kind != domain.KindActivity {
		indicator := "▾ "
		if !row.Expanded {
			indicator = fmt.Sprintf("▸ (%d) ", row.ChildCount)
		}
		nameWidth := activityNameWidth - len(indent) - len(indicator) + 2
		stats := row.Stats
		return fmt.Sprintf("%s%s%s%s %s %s %s",
			cursor, indent,
			formatter.Dim(indicator),
			formatter.StyleBold.Render(formatter.Pad(row.Name, max(nameWidth, 8))),
			formatter.RenderProgress(stats.AvgProgress/100, 8),
			formatter.Dim(fmt.Sprintf("%6.0fd", stats.TotalDuration)),
			formatter.DateRange(stats.Start, stats.End),
		)
	}

	a := row.Activity
	nameWidth := activityNameWidth - len(indent)
	name := formatter.Pad(a.TaskName, max(nameWidth, 8))
	if a.IsCritical() {
		name = formatter.StyleRed.Render(name)
	} else {
		name = formatter.StatusStyle(a.Status()).Render(name)
	}

	return fmt.Sprintf("%s%s%s %s %s %s %s",
		cursor, indent, name,
		formatter.RenderProgress(a.ProgressPct/100, 8),
		formatter.FloatIndicator(a.TotalFloatDays),
		formatter.Dim(fmt.Sprintf("%5.0fd", a.DurationDays)),
		formatter.DateRange(a.EarlyStart, a.EarlyEnd),
	)
}
