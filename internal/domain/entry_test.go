package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestWorkedMinutes(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      *string
		breakMin int
		want     int
	}{
		{"full day with break", "09:00:00", strp("17:00:00"), 30, 450},
		{"no break", "09:00:00", strp("10:30:00"), 0, 90},
		{"break swallows entry", "09:00:00", strp("09:30:00"), 45, 0},
		{"open entry counts zero", "09:00:00", nil, 0, 0},
		{"seconds are discarded", "09:00:30", strp("09:05:59"), 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &WorkEntry{Start: tt.start, End: tt.end, BreakMinutes: tt.breakMin}
			assert.Equal(t, tt.want, e.WorkedMinutes())
		})
	}
}

func TestValidateClosed(t *testing.T) {
	valid := func() *WorkEntry {
		return &WorkEntry{WorkDate: "2026-03-02", Start: "09:00:00", End: strp("17:00:00"), BreakMinutes: 30}
	}

	t.Run("accepts a well-formed entry", func(t *testing.T) {
		require.NoError(t, valid().ValidateClosed())
	})

	t.Run("rejects bad date", func(t *testing.T) {
		e := valid()
		e.WorkDate = "02.03.2026"
		assert.ErrorIs(t, e.ValidateClosed(), ErrInvalidInput)
	})

	t.Run("rejects missing end", func(t *testing.T) {
		e := valid()
		e.End = nil
		assert.ErrorIs(t, e.ValidateClosed(), ErrInvalidInput)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		e := valid()
		e.End = strp("09:00:00")
		assert.ErrorIs(t, e.ValidateClosed(), ErrInvalidInput)
	})

	t.Run("rejects negative break", func(t *testing.T) {
		e := valid()
		e.BreakMinutes = -1
		assert.ErrorIs(t, e.ValidateClosed(), ErrInvalidInput)
	})

	t.Run("rejects break longer than interval", func(t *testing.T) {
		e := valid()
		e.End = strp("09:20:00")
		e.BreakMinutes = 30
		assert.ErrorIs(t, e.ValidateClosed(), ErrInvalidInput)
	})
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", got)

	got, err = NormalizeClock("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59:59", got)

	for _, bad := range []string{"24:00", "9:30", "09:60", "09:30:60", "morning", ""} {
		_, err := NormalizeClock(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", bad)
	}
}

func TestClockArithmetic(t *testing.T) {
	assert.Equal(t, 0, ClockSeconds("00:00:00"))
	assert.Equal(t, 86399, ClockSeconds("23:59:59"))
	assert.Equal(t, 34230, ClockSeconds("09:30:30"))

	assert.Equal(t, "09:30:31", AddClockSecond("09:30:30"))
	// The day boundary is never crossed.
	assert.Equal(t, "23:59:59", AddClockSecond("23:59:59"))

	assert.Equal(t, 570, ClockMinutes("09:30:59"))
}
