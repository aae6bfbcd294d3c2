package domain

import (
	"fmt"
	"time"
)

// WorkEntry is one continuous (or still-open) work session for one user on
// one calendar date. An open entry has EndTime == nil and IsRunning true;
// IsRunning is tracked explicitly so the end-of-day recovery path can close
// an entry without losing the distinction.
type WorkEntry struct {
	ID       string
	UserID   string
	WorkDate string  // YYYY-MM-DD
	Start    string  // HH:MM:SS
	End      *string // HH:MM:SS, nil while the session is open

	BreakMinutes   int     // floor(BreakSeconds / 60), kept in sync by the store
	BreakSeconds   int     // precise accumulator
	IsOnBreak      bool    // nested break sub-state
	BreakStartedAt *string // HH:MM:SS, non-nil exactly while IsOnBreak

	IsRunning bool
	Note      *string

	// Baseline snapshot taken at creation time. Later edits to the user's
	// baseline never change these.
	BaselineDailyMinutes  int
	BaselineWeeklyMinutes int
	WorkdaysPerWeek       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the entry still represents an active session.
func (e *WorkEntry) IsOpen() bool {
	return e.End == nil || e.IsRunning
}

// WorkedMinutes is the entry's net worked time in whole minutes:
// max(0, end − start − break). Open entries count as zero.
func (e *WorkEntry) WorkedMinutes() int {
	if e.End == nil {
		return 0
	}
	worked := ClockMinutes(*e.End) - ClockMinutes(e.Start) - e.BreakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}

// ValidateClosed checks the invariants of a closed entry before it is
// written: valid date and times, positive duration, and a break that fits
// inside the interval. Detected before any mutation.
func (e *WorkEntry) ValidateClosed() error {
	if _, err := ParseDate(e.WorkDate); err != nil {
		return err
	}
	if _, err := NormalizeClock(e.Start); err != nil {
		return err
	}
	if e.End == nil {
		return fmt.Errorf("end time is required: %w", ErrInvalidInput)
	}
	if _, err := NormalizeClock(*e.End); err != nil {
		return err
	}
	if *e.End <= e.Start {
		return fmt.Errorf("end time must be after start time: %w", ErrInvalidInput)
	}
	if e.BreakMinutes < 0 {
		return fmt.Errorf("break minutes must be >= 0: %w", ErrInvalidInput)
	}
	if ClockMinutes(*e.End)-ClockMinutes(e.Start)-e.BreakMinutes < 0 {
		return fmt.Errorf("break is longer than the entry: %w", ErrInvalidInput)
	}
	return nil
}

// EntryPatch is a partial update to a closed entry. Nil fields keep the
// current value; a non-nil Note always replaces the stored note.
type EntryPatch struct {
	WorkDate     *string
	Start        *string
	End          *string
	BreakMinutes *int
	Note         *string
}
