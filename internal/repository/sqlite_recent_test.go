package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p6tools/p6view/internal/db"
)

func newTestRepo(t *testing.T) *SQLiteRecentRepo {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewSQLiteRecentRepo(database)
}

func rec(scheduleID int, openedAt time.Time) RecentSchedule {
	return RecentSchedule{
		ScheduleID:   scheduleID,
		ProjectID:    1,
		ProjectName:  "Bridge",
		ScheduleName: fmt.Sprintf("Baseline %d", scheduleID),
		OpenedAt:     openedAt,
	}
}

func TestRecentRepo_TouchAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Touch(ctx, rec(1, now)))
	require.NoError(t, repo.Touch(ctx, rec(2, now.Add(time.Hour))))

	got, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ScheduleID, "newest first")
	assert.Equal(t, 1, got[1].ScheduleID)
	assert.Equal(t, "Baseline 2", got[0].ScheduleName)
}

func TestRecentRepo_TouchRefreshesExisting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Touch(ctx, rec(1, now)))
	require.NoError(t, repo.Touch(ctx, rec(2, now.Add(time.Minute))))
	require.NoError(t, repo.Touch(ctx, rec(1, now.Add(time.Hour))))

	got, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2, "touch must not duplicate")
	assert.Equal(t, 1, got[0].ScheduleID, "refreshed entry moves to front")
}

func TestRecentRepo_TrimsToRetentionLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= keepRecent+5; i++ {
		require.NoError(t, repo.Touch(ctx, rec(i, now.Add(time.Duration(i)*time.Minute))))
	}

	got, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, keepRecent)
	assert.Equal(t, keepRecent+5, got[0].ScheduleID, "oldest entries evicted")
}

func TestRecentRepo_Forget(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Touch(ctx, rec(1, now)))
	require.NoError(t, repo.Forget(ctx, 1))
	require.NoError(t, repo.Forget(ctx, 99), "forgetting an unknown id is a no-op")

	got, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
