package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/p6tools/p6view/internal/cli/formatter"
	"github.com/p6tools/p6view/internal/repository"
)

const dashboardRecentLimit = 10

// dashboardLoadedMsg signals that dashboard data has been loaded.
type dashboardLoadedMsg struct {
	recents []repository.RecentSchedule
	healthy bool
}

// dashboardView is the home screen of the TUI. It shows backend health
// and the recently-opened schedules for quick reentry.
type dashboardView struct {
	state   *SharedState
	recents []repository.RecentSchedule
	healthy bool
	cursor  int
	loading bool
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		healthy := app.API.Health(ctx) == nil

		var recents []repository.RecentSchedule
		if app.Recents != nil {
			recents, _ = app.Recents.List(ctx, dashboardRecentLimit)
		}
		return dashboardLoadedMsg{recents: recents, healthy: healthy}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		v.recents = msg.recents
		v.healthy = msg.healthy
		if v.cursor >= len(v.recents) {
			v.cursor = max(0, len(v.recents)-1)
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.recents)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.recents) {
				r := v.recents[v.cursor]
				v.state.SetActiveProject(r.ProjectID, r.ProjectName)
				v.state.SetActiveSchedule(r.ScheduleID, r.ScheduleName)
				return v, pushView(newActivityTableView(v.state))
			}
		case "p":
			return v, pushView(newProjectListView(v.state))
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}

	var b strings.Builder
	b.WriteString("\n  ")
	if v.healthy {
		b.WriteString(formatter.StyleGreen.Render("● server online"))
	} else {
		b.WriteString(formatter.StyleRed.Render("● server unreachable") +
			"  " + formatter.Dim(v.state.App.Config.Endpoint))
	}
	b.WriteString("\n\n")

	b.WriteString("  " + formatter.StyleHeader.Render("RECENT SCHEDULES") + "\n\n")

	if len(v.recents) == 0 {
		b.WriteString("  " + formatter.Dim("No schedules opened yet. Press 'p' to browse projects.") + "\n")
		return b.String()
	}

	for i, r := range v.recents {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			cursor,
			nameStyle.Render(formatter.Pad(r.ScheduleName, 28)),
			formatter.Dim(formatter.Pad(r.ProjectName, 20)),
			formatter.Dim(r.OpenedAt.Format("Jan 02 15:04")),
		))
	}

	return b.String()
}
