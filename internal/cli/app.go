package cli

import (
	"context"
	"time"

	"github.com/p6tools/p6view/internal/api"
	"github.com/p6tools/p6view/internal/repository"
)

// App holds the API client and local stores used by CLI commands and views.
type App struct {
	API     api.Client
	Recents repository.RecentRepo
	Config  api.Config

	// IsInteractive reports whether stdin is a terminal. Set by main;
	// nil means non-interactive.
	IsInteractive func() bool
}

// TouchRecent records a schedule visit in the recents store.
// Best effort: a broken local store never blocks browsing.
func (a *App) TouchRecent(projectID int, projectName string, scheduleID int, scheduleName string) {
	if a.Recents == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = a.Recents.Touch(ctx, repository.RecentSchedule{
		ScheduleID:   scheduleID,
		ProjectID:    projectID,
		ProjectName:  projectName,
		ScheduleName: scheduleName,
		OpenedAt:     time.Now(),
	})
}
