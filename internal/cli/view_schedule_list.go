package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/p6tools/p6view/internal/cli/formatter"
	"github.com/p6tools/p6view/internal/domain"
)

// schedulesLoadedMsg signals that schedule list data has been loaded.
type schedulesLoadedMsg struct {
	schedules []*domain.Schedule
	err       error
}

// scheduleListView lists the schedules of the active project.
type scheduleListView struct {
	state     *SharedState
	schedules []*domain.Schedule
	cursor    int
	loading   bool
	err       error
}

func newScheduleListView(state *SharedState) *scheduleListView {
	return &scheduleListView{
		state:   state,
		loading: true,
	}
}

func (v *scheduleListView) ID() ViewID { return ViewScheduleList }
func (v *scheduleListView) Title() string {
	if v.state.ActiveProjectName != "" {
		return v.state.ActiveProjectName
	}
	return "Schedules"
}

func (v *scheduleListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activities")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload xer")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new schedule")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *scheduleListView) Init() tea.Cmd {
	return v.loadSchedules()
}

func (v *scheduleListView) loadSchedules() tea.Cmd {
	app := v.state.App
	projectID := v.state.ActiveProjectID
	return func() tea.Msg {
		schedules, err := app.API.ListSchedules(context.Background(), projectID)
		return schedulesLoadedMsg{schedules: schedules, err: err}
	}
}

func (v *scheduleListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case schedulesLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.schedules = msg.schedules
		if v.cursor >= len(v.schedules) {
			v.cursor = max(0, len(v.schedules)-1)
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadSchedules()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.schedules)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.schedules) {
				s := v.schedules[v.cursor]
				v.state.SetActiveSchedule(s.ID, s.Name)
				return v, pushView(newActivityTableView(v.state))
			}
		case "u":
			return v, execUploadSchedule(v.state)
		case "n":
			return v, execCreateSchedule(v.state)
		case "x":
			if v.cursor < len(v.schedules) {
				return v, v.deleteSchedule(v.schedules[v.cursor])
			}
		case "r":
			v.loading = true
			return v, v.loadSchedules()
		}
	}
	return v, nil
}

func (v *scheduleListView) deleteSchedule(s *domain.Schedule) tea.Cmd {
	state := v.state
	prompt := fmt.Sprintf("Delete %q", s.Name)
	if s.TotalActivities > 0 {
		prompt += fmt.Sprintf(" and %d activities", s.TotalActivities)
	}
	prompt += "?"
	return execConfirmDelete(state, prompt, s.Name, func(ctx context.Context) error {
		if err := state.App.API.DeleteSchedule(ctx, s.ID); err != nil {
			return err
		}
		if state.App.Recents != nil {
			_ = state.App.Recents.Forget(ctx, s.ID)
		}
		if state.ActiveScheduleID == s.ID {
			state.ClearScheduleContext()
		}
		return nil
	})
}

func (v *scheduleListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading schedules...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(v.schedules) == 0 {
		b.WriteString("  " + formatter.Dim("No schedules yet. Press 'u' to upload an XER file.") + "\n")
		return b.String()
	}

	for i, s := range v.schedules {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		b.WriteString(fmt.Sprintf("%s%s %s %s  %s\n",
			cursor,
			nameStyle.Render(formatter.Pad(s.Name, 26)),
			scheduleStatusDot(s.Status),
			formatter.Dim(fmt.Sprintf("%5d acts", s.TotalActivities)),
			formatter.DateRange(s.ProjectStartDate, s.ProjectFinishDate),
		))
	}

	return b.String()
}

func scheduleStatusDot(s domain.ScheduleStatus) string {
	switch s {
	case domain.ScheduleParsed:
		return formatter.StyleGreen.Render("●")
	case domain.ScheduleParsing:
		return formatter.StyleYellow.Render("●")
	case domain.ScheduleError:
		return formatter.StyleRed.Render("●")
	default:
		return formatter.Dim("●")
	}
}
