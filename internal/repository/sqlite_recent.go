package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// keepRecent is how many entries the table retains.
const keepRecent = 20

// SQLiteRecentRepo implements RecentRepo using a SQLite database.
type SQLiteRecentRepo struct {
	db *sql.DB
}

// NewSQLiteRecentRepo creates a new SQLiteRecentRepo.
func NewSQLiteRecentRepo(db *sql.DB) *SQLiteRecentRepo {
	return &SQLiteRecentRepo{db: db}
}

func (r *SQLiteRecentRepo) Touch(ctx context.Context, rec RecentSchedule) error {
	query := `INSERT INTO recent_schedules (schedule_id, project_id, project_name, schedule_name, opened_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(schedule_id) DO UPDATE SET
			project_name = excluded.project_name,
			schedule_name = excluded.schedule_name,
			opened_at = excluded.opened_at`
	_, err := r.db.ExecContext(ctx, query,
		rec.ScheduleID,
		rec.ProjectID,
		rec.ProjectName,
		rec.ScheduleName,
		rec.OpenedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording recent schedule: %w", err)
	}

	trim := `DELETE FROM recent_schedules WHERE schedule_id NOT IN (
		SELECT schedule_id FROM recent_schedules ORDER BY opened_at DESC LIMIT ?)`
	if _, err := r.db.ExecContext(ctx, trim, keepRecent); err != nil {
		return fmt.Errorf("trimming recent schedules: %w", err)
	}
	return nil
}

func (r *SQLiteRecentRepo) List(ctx context.Context, limit int) ([]RecentSchedule, error) {
	if limit <= 0 || limit > keepRecent {
		limit = keepRecent
	}
	query := `SELECT schedule_id, project_id, project_name, schedule_name, opened_at
		FROM recent_schedules ORDER BY opened_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent schedules: %w", err)
	}
	defer rows.Close()

	var out []RecentSchedule
	for rows.Next() {
		var rec RecentSchedule
		var openedAt string
		if err := rows.Scan(&rec.ScheduleID, &rec.ProjectID, &rec.ProjectName, &rec.ScheduleName, &openedAt); err != nil {
			return nil, fmt.Errorf("scanning recent schedule: %w", err)
		}
		rec.OpenedAt, err = time.Parse(time.RFC3339, openedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing opened_at: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecentRepo) Forget(ctx context.Context, scheduleID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recent_schedules WHERE schedule_id = ?`, scheduleID)
	if err != nil {
		return fmt.Errorf("forgetting schedule %d: %w", scheduleID, err)
	}
	return nil
}
