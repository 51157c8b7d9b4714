package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS recent_schedules (
		schedule_id   INTEGER PRIMARY KEY,
		project_id    INTEGER NOT NULL,
		project_name  TEXT NOT NULL,
		schedule_name TEXT NOT NULL,
		opened_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recent_opened_at
		ON recent_schedules(opened_at DESC)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
