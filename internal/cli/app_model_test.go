package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppModelStartsAtDashboard(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewDashboard, m.activeView().ID())
}

func TestAppModel_NavigationMessages(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	v2 := &stubView{id: ViewProjectList, title: "Projects"}
	v3 := &stubView{id: ViewScheduleList, title: "Schedules"}

	model, _ := m.Update(pushViewMsg{view: v2})
	m = model.(appModel)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, View(v2), m.activeView())

	model, cmd := m.Update(replaceViewMsg{view: v3})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, View(v3), m.activeView())

	model, cmd = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewDashboard, m.activeView().ID())
}

func TestAppModel_EscPopsButNeverEmptiesStack(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	model, _ := m.Update(pushViewMsg{view: &stubView{id: ViewProjectList}})
	m = model.(appModel)
	require.Len(t, m.viewStack, 2)

	model, _ = m.Update(keyMsg("esc"))
	m = model.(appModel)
	assert.Len(t, m.viewStack, 1)

	model, _ = m.Update(keyMsg("esc"))
	m = model.(appModel)
	assert.Len(t, m.viewStack, 1, "esc on the home view is a no-op")
}

func TestAppModel_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		app, _ := testApp(t)
		m := newAppModel(app)
		model, cmd := m.Update(msg)
		m = model.(appModel)
		assert.True(t, m.quitting)
		require.NotNil(t, cmd)
	}
}

func TestAppModel_WindowResizeForwardsToActiveView(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	v := &stubView{id: ViewProjectList}
	m.viewStack = []View{v}

	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	require.Len(t, v.updateSeen, 1)
	_, ok := v.updateSeen[0].(tea.WindowSizeMsg)
	assert.True(t, ok)
}

func TestAppModel_RefreshBroadcastsToWholeStack(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	under := &stubView{id: ViewScheduleList}
	top := &stubView{id: ViewActivityTable}
	m.viewStack = []View{under, top}

	model, _ := m.Update(refreshViewMsg{})
	m = model.(appModel)

	require.Len(t, under.updateSeen, 1)
	require.Len(t, top.updateSeen, 1)
}

func TestAppModel_WizardCompletePopsAndRefreshes(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	under := &stubView{id: ViewScheduleList}
	m.viewStack = []View{under, &stubView{id: ViewForm}}

	model, cmd := m.Update(wizardCompleteMsg{
		nextCmd: func() tea.Msg { return statusMsg{text: "done"} },
	})
	m = model.(appModel)

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, View(under), m.activeView())

	// The batched follow-up carries the status and a refresh.
	msgs := drain(cmd)
	var sawStatus, sawRefresh bool
	for _, msg := range msgs {
		switch msg.(type) {
		case statusMsg:
			sawStatus = true
		case refreshViewMsg:
			sawRefresh = true
		}
	}
	assert.True(t, sawStatus)
	assert.True(t, sawRefresh)
}

func TestAppModel_StatusLineClearsOnKeypress(t *testing.T) {
	app, _ := testApp(t)
	m := newAppModel(app)
	m.viewStack = []View{&stubView{id: ViewProjectList}}

	model, _ := m.Update(statusMsg{text: "saved"})
	m = model.(appModel)
	assert.Equal(t, "saved", m.status)

	model, _ = m.Update(keyMsg("j"))
	m = model.(appModel)
	assert.Empty(t, m.status)
}
