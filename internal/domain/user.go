package domain

import (
	"fmt"
	"time"
)

// Default baseline for newly registered users: a 40-hour week spread over
// five workdays.
const (
	DefaultBaselineWeeklyMinutes = 2400
	DefaultBaselineDailyMinutes  = 480
	DefaultWorkdaysPerWeek       = 5

	maxWeeklyMinutes = 7 * 24 * 60
	maxDailyMinutes  = 24 * 60
)

// User owns work entries and carries the current baseline configuration.
// Entries snapshot the baseline at creation time, so edits here never
// change historical accounting.
type User struct {
	ID   string
	Name string

	BaselineWeeklyMinutes int
	BaselineDailyMinutes  int
	WorkdaysPerWeek       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Baseline is the per-user target configuration read by the timer and the
// accounting engine.
type Baseline struct {
	WeeklyMinutes   int
	DailyMinutes    int
	WorkdaysPerWeek int
}

// Baseline returns the user's current baseline configuration.
func (u *User) Baseline() Baseline {
	return Baseline{
		WeeklyMinutes:   u.BaselineWeeklyMinutes,
		DailyMinutes:    u.BaselineDailyMinutes,
		WorkdaysPerWeek: u.WorkdaysPerWeek,
	}
}

// Validate checks baseline ranges before an update is written.
func (b Baseline) Validate() error {
	if b.WeeklyMinutes < 0 || b.WeeklyMinutes > maxWeeklyMinutes {
		return fmt.Errorf("weekly baseline %d out of range 0..%d: %w", b.WeeklyMinutes, maxWeeklyMinutes, ErrInvalidInput)
	}
	if b.DailyMinutes < 0 || b.DailyMinutes > maxDailyMinutes {
		return fmt.Errorf("daily baseline %d out of range 0..%d: %w", b.DailyMinutes, maxDailyMinutes, ErrInvalidInput)
	}
	if b.WorkdaysPerWeek < 1 || b.WorkdaysPerWeek > 7 {
		return fmt.Errorf("workdays per week %d out of range 1..7: %w", b.WorkdaysPerWeek, ErrInvalidInput)
	}
	return nil
}
