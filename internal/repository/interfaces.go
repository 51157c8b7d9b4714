package repository

import (
	"context"
	"time"
)

// RecentSchedule records one locally-opened schedule for quick reentry.
type RecentSchedule struct {
	ScheduleID   int
	ProjectID    int
	ProjectName  string
	ScheduleName string
	OpenedAt     time.Time
}

// RecentRepo persists the recently-opened schedule list.
type RecentRepo interface {
	// Touch inserts or refreshes the entry for a schedule, trimming
	// the table to the retention limit.
	Touch(ctx context.Context, r RecentSchedule) error
	// List returns entries newest-first, up to limit.
	List(ctx context.Context, limit int) ([]RecentSchedule, error)
	// Forget drops the entry for a deleted schedule.
	Forget(ctx context.Context, scheduleID int) error
}
