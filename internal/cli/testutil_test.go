package cli

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/p6tools/p6view/internal/api"
	"github.com/p6tools/p6view/internal/domain"
)

// fakeAPI is an in-memory api.Client for view tests.
type fakeAPI struct {
	projects  []*domain.Project
	schedules []*domain.Schedule

	// activitiesFn answers GetActivities/GetAllActivities; queries are
	// recorded so tests can assert what was sent.
	activitiesFn func(q api.ActivityQuery) (*api.ActivityPage, error)
	queries      []api.ActivityQuery

	healthErr error
	deleted   []int
}

func (f *fakeAPI) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return f.projects, nil
}

func (f *fakeAPI) CreateProject(ctx context.Context, name, description, createdBy string) (*domain.Project, error) {
	p := &domain.Project{ID: len(f.projects) + 1, Name: name, Description: description}
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *fakeAPI) ListSchedules(ctx context.Context, projectID int) ([]*domain.Schedule, error) {
	return f.schedules, nil
}

func (f *fakeAPI) CreateSchedule(ctx context.Context, projectID int, name, description, createdBy string) (*domain.Schedule, error) {
	s := &domain.Schedule{ID: len(f.schedules) + 1, ProjectID: projectID, Name: name}
	f.schedules = append(f.schedules, s)
	return s, nil
}

func (f *fakeAPI) DeleteSchedule(ctx context.Context, scheduleID int) error {
	f.deleted = append(f.deleted, scheduleID)
	return nil
}

func (f *fakeAPI) UploadScheduleFile(ctx context.Context, projectID int, path, scheduleName, description, createdBy string) (*domain.Schedule, error) {
	return &domain.Schedule{ID: 99, ProjectID: projectID, Name: scheduleName}, nil
}

func (f *fakeAPI) GetActivities(ctx context.Context, scheduleID int, q api.ActivityQuery) (*api.ActivityPage, error) {
	return f.GetAllActivities(ctx, scheduleID, q)
}

func (f *fakeAPI) GetAllActivities(ctx context.Context, scheduleID int, q api.ActivityQuery) (*api.ActivityPage, error) {
	f.queries = append(f.queries, q)
	if f.activitiesFn != nil {
		return f.activitiesFn(q)
	}
	return &api.ActivityPage{}, nil
}

func (f *fakeAPI) Health(ctx context.Context) error { return f.healthErr }

func (f *fakeAPI) DebugStatus(ctx context.Context) (map[string]any, error) {
	return map[string]any{"status": "ok"}, nil
}

func testApp(t *testing.T) (*App, *fakeAPI) {
	t.Helper()
	fake := &fakeAPI{}
	return &App{API: fake, Config: api.DefaultConfig()}, fake
}

func testState(t *testing.T) (*SharedState, *fakeAPI) {
	t.Helper()
	app, fake := testApp(t)
	return &SharedState{App: app, Width: 100, Height: 30}, fake
}

// drain runs a tea.Cmd (and any batch it produced) and returns the
// messages it yielded, in order.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// stubView is a minimal View for stack-manipulation tests.
type stubView struct {
	id         ViewID
	title      string
	viewText   string
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return nil }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, nil
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return nil }
func (v *stubView) Title() string            { return v.title }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
