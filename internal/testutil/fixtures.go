package testutil

import (
	"time"

	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/google/uuid"
)

// User options
type UserOption func(*domain.User)

func WithBaseline(weekly, daily, workdays int) UserOption {
	return func(u *domain.User) {
		u.BaselineWeeklyMinutes = weekly
		u.BaselineDailyMinutes = daily
		u.WorkdaysPerWeek = workdays
	}
}

// NewTestUser builds a user with the default 2400/480/5 baseline.
func NewTestUser(name string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:                    uuid.New().String(),
		Name:                  name,
		BaselineWeeklyMinutes: domain.DefaultBaselineWeeklyMinutes,
		BaselineDailyMinutes:  domain.DefaultBaselineDailyMinutes,
		WorkdaysPerWeek:       domain.DefaultWorkdaysPerWeek,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Entry options
type EntryOption func(*domain.WorkEntry)

func WithBreak(minutes int) EntryOption {
	return func(e *domain.WorkEntry) {
		e.BreakMinutes = minutes
		e.BreakSeconds = minutes * 60
	}
}

func WithNote(note string) EntryOption {
	return func(e *domain.WorkEntry) {
		e.Note = &note
	}
}

func WithEntrySnapshot(weekly, daily, workdays int) EntryOption {
	return func(e *domain.WorkEntry) {
		e.BaselineWeeklyMinutes = weekly
		e.BaselineDailyMinutes = daily
		e.WorkdaysPerWeek = workdays
	}
}

// Open marks the entry as a still-running session.
func Open() EntryOption {
	return func(e *domain.WorkEntry) {
		e.End = nil
		e.IsRunning = true
	}
}

// OnBreak marks the open entry as currently on break since the given clock.
func OnBreak(since string) EntryOption {
	return func(e *domain.WorkEntry) {
		e.IsOnBreak = true
		e.BreakStartedAt = &since
	}
}

// NewTestEntry builds a closed entry for the given user and day with the
// default baseline snapshot. Use Open() for a running session.
func NewTestEntry(userID, workDate, start, end string, opts ...EntryOption) *domain.WorkEntry {
	now := time.Now().UTC()
	e := &domain.WorkEntry{
		ID:                    uuid.New().String(),
		UserID:                userID,
		WorkDate:              workDate,
		Start:                 start,
		IsRunning:             false,
		BaselineWeeklyMinutes: domain.DefaultBaselineWeeklyMinutes,
		BaselineDailyMinutes:  domain.DefaultBaselineDailyMinutes,
		WorkdaysPerWeek:       domain.DefaultWorkdaysPerWeek,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if end != "" {
		e.End = &end
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
