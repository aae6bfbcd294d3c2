package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and the
// whole list is re-run on every startup; ALTER TABLE statements that
// already applied are tolerated by error message.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The store, not application code, enforces the entry invariants:
//   - at most one open entry per user (partial unique index on end_time IS NULL)
//   - no overlapping same-day intervals per user (insert/update triggers;
//     an open entry occupies the rest of its day)
//   - end_time strictly after start_time
//   - break_started_at set exactly while is_on_break
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                      TEXT PRIMARY KEY,
		name                    TEXT NOT NULL UNIQUE,
		baseline_weekly_minutes INTEGER NOT NULL,
		baseline_daily_minutes  INTEGER NOT NULL,
		workdays_per_week       INTEGER NOT NULL CHECK(workdays_per_week BETWEEN 1 AND 7),
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_entries (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		work_date        TEXT NOT NULL,
		start_time       TEXT NOT NULL,
		end_time         TEXT,
		break_minutes    INTEGER NOT NULL DEFAULT 0 CHECK(break_minutes >= 0),
		break_seconds    INTEGER NOT NULL DEFAULT 0 CHECK(break_seconds >= 0),
		is_on_break      INTEGER NOT NULL DEFAULT 0,
		break_started_at TEXT,
		is_running       INTEGER NOT NULL DEFAULT 0,
		note             TEXT,
		baseline_daily_minutes_at_time  INTEGER NOT NULL,
		baseline_weekly_minutes_at_time INTEGER NOT NULL,
		workdays_per_week_at_time       INTEGER NOT NULL,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		CHECK(end_time IS NULL OR end_time > start_time),
		CHECK((is_on_break = 0) = (break_started_at IS NULL))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_entries_user_date
		ON work_entries(user_id, work_date)`,

	// One active session per user, across all days.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_entries_one_open
		ON work_entries(user_id) WHERE end_time IS NULL`,

	// Same-day intervals [start, end) must not overlap; an open entry is
	// treated as running to the end of its day.
	`CREATE TRIGGER IF NOT EXISTS trg_work_entries_overlap_insert
	BEFORE INSERT ON work_entries
	BEGIN
		SELECT RAISE(ABORT, 'work entry overlap')
		WHERE EXISTS (
			SELECT 1 FROM work_entries w
			WHERE w.user_id = NEW.user_id
			  AND w.work_date = NEW.work_date
			  AND w.id <> NEW.id
			  AND NEW.start_time < coalesce(w.end_time, '24:00:00')
			  AND w.start_time < coalesce(NEW.end_time, '24:00:00')
		);
	END`,

	`CREATE TRIGGER IF NOT EXISTS trg_work_entries_overlap_update
	BEFORE UPDATE OF work_date, start_time, end_time ON work_entries
	BEGIN
		SELECT RAISE(ABORT, 'work entry overlap')
		WHERE EXISTS (
			SELECT 1 FROM work_entries w
			WHERE w.user_id = NEW.user_id
			  AND w.work_date = NEW.work_date
			  AND w.id <> NEW.id
			  AND NEW.start_time < coalesce(w.end_time, '24:00:00')
			  AND w.start_time < coalesce(NEW.end_time, '24:00:00')
		);
	END`,
}
