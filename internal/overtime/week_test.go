package overtime

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	loc := time.UTC
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, loc) // a Monday

	tests := []struct {
		name string
		day  time.Time
	}{
		{"monday maps to itself", monday},
		{"wednesday maps back", monday.AddDate(0, 0, 2)},
		{"sunday maps back six days", monday.AddDate(0, 0, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, monday, WeekStart(tt.day))
		})
	}

	// Sunday belongs to the preceding Monday's week, not the next one.
	sunday := time.Date(2026, 3, 1, 15, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, loc), WeekStart(sunday))
}

// TestDistributeBaseline_SumLaw property-tests the distribution law:
// the per-weekday targets always sum to the weekly baseline, for any
// workdays in 1..7 and any non-negative baseline.
func TestDistributeBaseline_SumLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		baseline := rng.Intn(7 * 24 * 60)
		workdays := rng.Intn(7) + 1

		targets := DistributeBaseline(baseline, workdays)

		sum := 0
		for _, v := range targets {
			sum += v
		}
		assert.Equal(t, baseline, sum,
			"trial %d: targets %v must sum to baseline %d (workdays %d)", trial, targets, baseline, workdays)

		// Non-configured weekdays carry no target.
		for i := workdays; i < 7; i++ {
			assert.Zero(t, targets[i], "trial %d: weekday %d is not configured", trial, i)
		}

		// The remainder lands on the last configured workday only.
		for i := 0; i < workdays-1; i++ {
			assert.Equal(t, baseline/workdays, targets[i], "trial %d: weekday %d gets the floor share", trial, i)
		}
	}
}

func TestDistributeBaseline_Standard40hWeek(t *testing.T) {
	targets := DistributeBaseline(2400, 5)
	assert.Equal(t, [7]int{480, 480, 480, 480, 480, 0, 0}, targets)
}

func TestDistributeBaseline_RemainderOnLastWorkday(t *testing.T) {
	targets := DistributeBaseline(100, 3)
	assert.Equal(t, [7]int{33, 33, 34, 0, 0, 0, 0}, targets)
}

func TestDistributeBaseline_ClampsWorkdays(t *testing.T) {
	// workdays == 0 is invalid input and clamps to 1.
	targets := DistributeBaseline(300, 0)
	assert.Equal(t, [7]int{300, 0, 0, 0, 0, 0, 0}, targets)

	targets = DistributeBaseline(700, 9)
	assert.Equal(t, [7]int{100, 100, 100, 100, 100, 100, 100}, targets)
}
