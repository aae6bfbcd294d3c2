package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/identity"
	"github.com/fhagedorn/stempel/internal/repository"
	"github.com/fhagedorn/stempel/internal/testutil"
)

// fakeHolidays is a canned holiday provider for stats tests.
type fakeHolidays struct {
	days map[string]struct{}
	err  error
}

func (f fakeHolidays) HolidaysInRange(from, to string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]struct{})
	for d := range f.days {
		if d >= from && d <= to {
			out[d] = struct{}{}
		}
	}
	return out, nil
}

func setupStats(t *testing.T, holidays fakeHolidays, today time.Time) (*statsService, *repository.SQLiteEntryRepo, *domain.User) {
	t.Helper()
	database := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(database)
	users := repository.NewSQLiteUserRepo(database)

	user := testutil.NewTestUser("alice")
	require.NoError(t, users.Create(context.Background(), user))

	clock := func() time.Time { return today }
	svc := newStatsService(entries, holidays, identity.Static(user.ID), time.UTC, clock)
	return svc, entries, user
}

func TestStatsOverview_Empty(t *testing.T) {
	svc, _, _ := setupStats(t, fakeHolidays{}, time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC))

	report, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.WeeksCount)
	assert.Zero(t, report.TotalWorkedMinutes)
}

func TestStatsOverview_EndToEnd(t *testing.T) {
	// Friday 2026-05-01 is a holiday; the user worked Monday through
	// Thursday of that week and Monday plus Tuesday of the current week.
	holidays := fakeHolidays{days: map[string]struct{}{"2026-05-01": {}}}
	today := time.Date(2026, 5, 6, 9, 0, 0, 0, time.UTC) // Wednesday

	svc, entries, user := setupStats(t, holidays, today)
	ctx := context.Background()

	for _, d := range []string{"2026-04-27", "2026-04-28", "2026-04-29", "2026-04-30", "2026-05-04", "2026-05-05"} {
		require.NoError(t, entries.Insert(ctx, testutil.NewTestEntry(user.ID, d, "08:00:00", "16:00:00")))
	}
	// An open session today must not count.
	require.NoError(t, entries.Insert(ctx, testutil.NewTestEntry(user.ID, "2026-05-06", "08:00:00", "", testutil.Open())))

	report, err := svc.Overview(ctx)
	require.NoError(t, err)

	require.Len(t, report.Weeks, 2)

	past := report.Weeks[0]
	assert.Equal(t, 4*480, past.Worked)
	assert.Equal(t, 2400, past.Expected)
	assert.Equal(t, 480, past.Credit)
	assert.Zero(t, past.Overtime)

	current := report.Weeks[1]
	assert.Equal(t, 2*480, current.Worked)
	assert.Equal(t, 2*480, current.Expected)
	assert.Zero(t, current.Overtime)

	assert.Equal(t, 6*480, report.TotalWorkedMinutes)
	assert.Zero(t, report.OvertimeTotalMinutes)
	assert.Equal(t, 2, report.WeeksCount)
	assert.Equal(t, 6, report.DaysCount)
}

func TestStatsOverview_HolidayProviderFailureFailsComputation(t *testing.T) {
	boom := errors.New("holiday source unavailable")
	svc, entries, user := setupStats(t, fakeHolidays{err: boom}, time.Date(2026, 5, 6, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	require.NoError(t, entries.Insert(ctx, testutil.NewTestEntry(user.ID, "2026-04-27", "08:00:00", "16:00:00")))

	_, err := svc.Overview(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestStatsOverview_Unauthorized(t *testing.T) {
	database := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(database)

	svc := NewStatsService(entries, fakeHolidays{}, identity.Static(""), time.UTC)
	_, err := svc.Overview(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
