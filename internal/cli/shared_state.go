package cli

import "github.com/p6tools/p6view/internal/api"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active project context
	ActiveProjectID   int
	ActiveProjectName string

	// Active schedule context
	ActiveScheduleID   int
	ActiveScheduleName string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveProject sets the active project context.
func (s *SharedState) SetActiveProject(id int, name string) {
	s.ActiveProjectID = id
	s.ActiveProjectName = name
	s.ClearScheduleContext()
}

// SetActiveSchedule sets the active schedule context and records the
// visit in the recents store when one is wired.
func (s *SharedState) SetActiveSchedule(id int, name string) {
	s.ActiveScheduleID = id
	s.ActiveScheduleName = name
	s.App.TouchRecent(s.ActiveProjectID, s.ActiveProjectName, id, name)
}

// ClearScheduleContext resets the active schedule state.
func (s *SharedState) ClearScheduleContext() {
	s.ActiveScheduleID = 0
	s.ActiveScheduleName = ""
}

// ActivityQuery returns a base query for the active schedule using the
// configured page size.
func (s *SharedState) ActivityQuery() api.ActivityQuery {
	return api.ActivityQuery{PerPage: s.App.Config.PerPage}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
