package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fhagedorn/stempel/internal/db"
	"github.com/fhagedorn/stempel/internal/domain"
)

const userColumns = `id, name, baseline_weekly_minutes, baseline_daily_minutes,
	workdays_per_week, created_at, updated_at`

// SQLiteUserRepo implements UserRepo on a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a user repository over the given handle.
func NewSQLiteUserRepo(dbtx db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: dbtx}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Name,
		u.BaselineWeeklyMinutes,
		u.BaselineDailyMinutes,
		u.WorkdaysPerWeek,
		u.CreatedAt.UTC().Format(time.RFC3339),
		u.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("user %q already exists: %w", u.Name, domain.ErrConflict)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteUserRepo) GetByName(ctx context.Context, name string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteUserRepo) UpdateBaseline(ctx context.Context, id string, b domain.Baseline) error {
	query := `UPDATE users
		SET baseline_weekly_minutes = ?, baseline_daily_minutes = ?,
		    workdays_per_week = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.WeeklyMinutes, b.DailyMinutes, b.WorkdaysPerWeek, nowUTC(), id)
	if err != nil {
		return mapConstraintErr("updating baseline", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating baseline: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteUserRepo) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var createdAt, updatedAt string

	err := row.Scan(
		&u.ID, &u.Name, &u.BaselineWeeklyMinutes, &u.BaselineDailyMinutes,
		&u.WorkdaysPerWeek, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	if u.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if u.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &u, nil
}
