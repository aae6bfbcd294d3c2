package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Calendar dates are carried as "YYYY-MM-DD" strings and times of day as
// "HH:MM:SS" strings, matching the store representation. Both orders
// chronologically under plain string comparison, which the store's
// range and overlap checks rely on.

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"

	// EndOfDay is the last representable second of a day, used when a
	// stale session is closed at its day boundary.
	EndOfDay = "23:59:59"
)

var (
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)
	clockHMPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ParseDate validates a calendar date string.
func ParseDate(s string) (time.Time, error) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", s, ErrInvalidInput)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, ErrInvalidInput)
	}
	return t, nil
}

// NormalizeClock accepts "HH:MM" or "HH:MM:SS" and returns the canonical
// "HH:MM:SS" form.
func NormalizeClock(s string) (string, error) {
	switch {
	case clockPattern.MatchString(s):
		return s, nil
	case clockHMPattern.MatchString(s):
		return s + ":00", nil
	default:
		return "", fmt.Errorf("time %q must be HH:MM or HH:MM:SS: %w", s, ErrInvalidInput)
	}
}

// ClockSeconds converts a canonical "HH:MM:SS" string to seconds since
// midnight. The input is assumed validated.
func ClockSeconds(s string) int {
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	sec := int(s[6]-'0')*10 + int(s[7]-'0')
	return h*3600 + m*60 + sec
}

// SecondsClock converts seconds since midnight back to "HH:MM:SS",
// clamping to the same day.
func SecondsClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	if sec > 24*3600-1 {
		sec = 24*3600 - 1
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
}

// AddClockSecond returns the clock one second after s, capped at EndOfDay.
func AddClockSecond(s string) string {
	return SecondsClock(ClockSeconds(s) + 1)
}

// ClockMinutes returns full minutes since midnight, discarding seconds.
func ClockMinutes(s string) int {
	return ClockSeconds(s) / 60
}
