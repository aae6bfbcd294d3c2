package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fhagedorn/stempel/internal/db"
	"github.com/fhagedorn/stempel/internal/domain"
)

// entryColumns is the canonical select list for work entries.
const entryColumns = `id, user_id, work_date, start_time, end_time,
	break_minutes, break_seconds, is_on_break, break_started_at,
	is_running, note,
	baseline_daily_minutes_at_time, baseline_weekly_minutes_at_time,
	workdays_per_week_at_time, created_at, updated_at`

// breakDelta computes, in SQL, the seconds elapsed between the current
// break_started_at and a ?-bound HH:MM:SS clock, clamped at zero. Doing
// the arithmetic inside the UPDATE keeps every break transition a single
// atomic statement.
const breakDelta = `max(0,
	strftime('%s', '2000-01-01 ' || ?) - strftime('%s', '2000-01-01 ' || break_started_at))`

// SQLiteEntryRepo implements EntryRepo on a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates an entry repository over the given handle,
// which may be a *sql.DB or a transaction-scoped DBTX.
func NewSQLiteEntryRepo(dbtx db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: dbtx}
}

func (r *SQLiteEntryRepo) Insert(ctx context.Context, e *domain.WorkEntry) error {
	query := `INSERT INTO work_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.WorkDate,
		e.Start,
		nullableStr(e.End),
		e.BreakMinutes,
		e.BreakSeconds,
		boolToInt(e.IsOnBreak),
		nullableStr(e.BreakStartedAt),
		boolToInt(e.IsRunning),
		nullableStr(e.Note),
		e.BaselineDailyMinutes,
		e.BaselineWeeklyMinutes,
		e.WorkdaysPerWeek,
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return mapConstraintErr("inserting work entry", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id, userID string) (*domain.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries WHERE id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, userID)
	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work entry: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work entry: %w", err)
	}
	return e, nil
}

// Update rewrites the mutable columns of an entry. The caller merges and
// validates the patched entry first (inside a transaction when racing
// edits matter); the overlap trigger still guards the final interval.
func (r *SQLiteEntryRepo) Update(ctx context.Context, e *domain.WorkEntry) error {
	query := `UPDATE work_entries SET
		work_date = ?, start_time = ?, end_time = ?,
		break_minutes = ?, break_seconds = ?, note = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.WorkDate,
		e.Start,
		nullableStr(e.End),
		e.BreakMinutes,
		e.BreakSeconds,
		nullableStr(e.Note),
		nowUTC(),
		e.ID,
		e.UserID,
	)
	if err != nil {
		return mapConstraintErr("updating work entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating work entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("work entry: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteEntryRepo) DeleteByID(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM work_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting work entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting work entry: %w", err)
	}
	return n > 0, nil
}

// FindActiveForUser returns the user's open entry regardless of day, or
// nil. The partial unique index guarantees there is at most one.
func (r *SQLiteEntryRepo) FindActiveForUser(ctx context.Context, userID string) (*domain.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries
		WHERE user_id = ? AND (end_time IS NULL OR is_running = 1)
		ORDER BY work_date DESC, start_time DESC
		LIMIT 1`
	return r.findOne(ctx, query, userID)
}

// FindActiveForDay returns the open entry for the given day, or nil.
func (r *SQLiteEntryRepo) FindActiveForDay(ctx context.Context, userID, date string) (*domain.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries
		WHERE user_id = ? AND work_date = ? AND (end_time IS NULL OR is_running = 1)
		ORDER BY start_time DESC
		LIMIT 1`
	return r.findOne(ctx, query, userID, date)
}

// FindStaleForUser returns the most recent open entry dated strictly
// before beforeDate, or nil. Such an entry means the stop action was
// missed before midnight.
func (r *SQLiteEntryRepo) FindStaleForUser(ctx context.Context, userID, beforeDate string) (*domain.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries
		WHERE user_id = ? AND work_date < ? AND (end_time IS NULL OR is_running = 1)
		ORDER BY work_date DESC, start_time DESC
		LIMIT 1`
	return r.findOne(ctx, query, userID, beforeDate)
}

func (r *SQLiteEntryRepo) QueryRange(ctx context.Context, userID, fromDate, toDate string) ([]*domain.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries
		WHERE user_id = ? AND work_date BETWEEN ? AND ?
		ORDER BY work_date ASC, start_time ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("querying entry range: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListClosed returns every entry with a recorded end time in
// chronological order. This single query is the consistent snapshot the
// accounting engine aggregates over.
func (r *SQLiteEntryRepo) ListClosed(ctx context.Context, userID string) ([]*domain.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries
		WHERE user_id = ? AND end_time IS NOT NULL
		ORDER BY work_date ASC, start_time ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing closed entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// StartBreak marks the day's running entry as on break. The WHERE clause
// re-checks "running and not on break"; zero rows affected means the
// precondition no longer held.
func (r *SQLiteEntryRepo) StartBreak(ctx context.Context, userID, date, at string) (bool, error) {
	query := `UPDATE work_entries
		SET is_on_break = 1, break_started_at = ?, updated_at = ?
		WHERE user_id = ? AND work_date = ?
		  AND (end_time IS NULL OR is_running = 1)
		  AND is_on_break = 0`
	res, err := r.db.ExecContext(ctx, query, at, nowUTC(), userID, date)
	if err != nil {
		return false, mapConstraintErr("starting break", err)
	}
	return oneRowApplied(res, "starting break")
}

// StopBreak folds max(0, at − break_started_at) seconds into the break
// accumulators and clears the break sub-state, all in one statement.
// Column references on the right-hand side read the pre-update values, so
// break_minutes is derived from the same delta that break_seconds gains.
func (r *SQLiteEntryRepo) StopBreak(ctx context.Context, userID, date, at string) (bool, error) {
	query := `UPDATE work_entries
		SET break_seconds = break_seconds + ` + breakDelta + `,
		    break_minutes = (break_seconds + ` + breakDelta + `) / 60,
		    is_on_break = 0,
		    break_started_at = NULL,
		    updated_at = ?
		WHERE user_id = ? AND work_date = ?
		  AND (end_time IS NULL OR is_running = 1)
		  AND is_on_break = 1 AND break_started_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, at, at, nowUTC(), userID, date)
	if err != nil {
		return false, mapConstraintErr("stopping break", err)
	}
	return oneRowApplied(res, "stopping break")
}

// Close ends an open entry at the given clock: any open break is
// finalized at that boundary exactly as StopBreak would, end_time is set,
// and the entry stops running. Serves both the regular stop and the
// end-of-day stale resolution. Zero rows affected means the entry was
// already closed (or gone).
func (r *SQLiteEntryRepo) Close(ctx context.Context, id, userID, end string) (bool, error) {
	query := `UPDATE work_entries
		SET break_seconds = break_seconds + CASE
		      WHEN is_on_break = 1 AND break_started_at IS NOT NULL THEN ` + breakDelta + `
		      ELSE 0 END,
		    break_minutes = (break_seconds + CASE
		      WHEN is_on_break = 1 AND break_started_at IS NOT NULL THEN ` + breakDelta + `
		      ELSE 0 END) / 60,
		    is_on_break = 0,
		    break_started_at = NULL,
		    end_time = ?,
		    is_running = 0,
		    updated_at = ?
		WHERE id = ? AND user_id = ?
		  AND (end_time IS NULL OR is_running = 1)`
	res, err := r.db.ExecContext(ctx, query, end, end, end, nowUTC(), id, userID)
	if err != nil {
		return false, mapConstraintErr("closing work entry", err)
	}
	return oneRowApplied(res, "closing work entry")
}

func (r *SQLiteEntryRepo) findOne(ctx context.Context, query string, args ...any) (*domain.WorkEntry, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning work entry: %w", err)
	}
	return e, nil
}

func oneRowApplied(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.WorkEntry, error) {
	var e domain.WorkEntry
	var end, breakStarted, note sql.NullString
	var isOnBreak, isRunning int
	var createdAt, updatedAt string

	err := row.Scan(
		&e.ID, &e.UserID, &e.WorkDate, &e.Start, &end,
		&e.BreakMinutes, &e.BreakSeconds, &isOnBreak, &breakStarted,
		&isRunning, &note,
		&e.BaselineDailyMinutes, &e.BaselineWeeklyMinutes,
		&e.WorkdaysPerWeek, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.End = strPtr(end)
	e.BreakStartedAt = strPtr(breakStarted)
	e.Note = strPtr(note)
	e.IsOnBreak = intToBool(isOnBreak)
	e.IsRunning = intToBool(isRunning)

	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]*domain.WorkEntry, error) {
	var entries []*domain.WorkEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}
