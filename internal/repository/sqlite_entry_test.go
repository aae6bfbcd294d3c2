package repository

import (
	"context"
	"testing"

	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entryTestSetup creates a user and returns repositories bound to a fresh
// in-memory database.
func entryTestSetup(t *testing.T) (*SQLiteEntryRepo, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	userRepo := NewSQLiteUserRepo(database)
	entryRepo := NewSQLiteEntryRepo(database)

	user := testutil.NewTestUser("alice")
	require.NoError(t, userRepo.Create(ctx, user))

	return entryRepo, user.ID
}

func TestEntryRepo_InsertAndGetByID(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "17:00:00",
		testutil.WithBreak(30), testutil.WithNote("onsite day"))
	require.NoError(t, repo.Insert(ctx, e))

	fetched, err := repo.GetByID(ctx, e.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, fetched.ID)
	assert.Equal(t, "2026-03-02", fetched.WorkDate)
	assert.Equal(t, "09:00:00", fetched.Start)
	require.NotNil(t, fetched.End)
	assert.Equal(t, "17:00:00", *fetched.End)
	assert.Equal(t, 30, fetched.BreakMinutes)
	assert.Equal(t, 1800, fetched.BreakSeconds)
	require.NotNil(t, fetched.Note)
	assert.Equal(t, "onsite day", *fetched.Note)
	assert.False(t, fetched.IsRunning)
	assert.Equal(t, 2400, fetched.BaselineWeeklyMinutes)
}

func TestEntryRepo_GetByID_NotFound(t *testing.T) {
	repo, userID := entryTestSetup(t)

	_, err := repo.GetByID(context.Background(), "nonexistent", userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryRepo_GetByID_OtherUsersEntryHidden(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "17:00:00")
	require.NoError(t, repo.Insert(ctx, e))

	_, err := repo.GetByID(ctx, e.ID, "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryRepo_Insert_RejectsOverlap(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	existing := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "17:00:00")
	require.NoError(t, repo.Insert(ctx, existing))

	overlapping := testutil.NewTestEntry(userID, "2026-03-02", "10:00:00", "11:00:00")
	err := repo.Insert(ctx, overlapping)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The failed insert must not have mutated the store.
	entries, err := repo.QueryRange(ctx, userID, "2026-03-02", "2026-03-02")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEntryRepo_Insert_RejectsOverlapWithOpenEntry(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	open := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "", testutil.Open())
	require.NoError(t, repo.Insert(ctx, open))

	// The open entry occupies the rest of its day.
	closed := testutil.NewTestEntry(userID, "2026-03-02", "13:00:00", "14:00:00")
	assert.ErrorIs(t, repo.Insert(ctx, closed), domain.ErrConflict)
}

func TestEntryRepo_Insert_AdjacentIntervalsAllowed(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	first := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "12:00:00")
	require.NoError(t, repo.Insert(ctx, first))

	// [start, end) intervals: a new entry may begin exactly at the old end.
	second := testutil.NewTestEntry(userID, "2026-03-02", "12:00:00", "17:00:00")
	assert.NoError(t, repo.Insert(ctx, second))
}

func TestEntryRepo_Insert_SecondOpenEntryRejected(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	first := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "", testutil.Open())
	require.NoError(t, repo.Insert(ctx, first))

	// Even on a different day: at most one open session per user.
	second := testutil.NewTestEntry(userID, "2026-03-03", "09:00:00", "", testutil.Open())
	assert.ErrorIs(t, repo.Insert(ctx, second), domain.ErrConflict)
}

func TestEntryRepo_Insert_RejectsNonPositiveDuration(t *testing.T) {
	repo, userID := entryTestSetup(t)

	e := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "09:00:00")
	assert.ErrorIs(t, repo.Insert(context.Background(), e), domain.ErrConflict)
}

func TestEntryRepo_FindActiveForUser(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	active, err := repo.FindActiveForUser(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, active, "no active entry yet")

	closed := testutil.NewTestEntry(userID, "2026-03-02", "08:00:00", "08:30:00")
	require.NoError(t, repo.Insert(ctx, closed))
	open := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "", testutil.Open())
	require.NoError(t, repo.Insert(ctx, open))

	active, err = repo.FindActiveForUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, open.ID, active.ID)
	assert.True(t, active.IsRunning)
}

func TestEntryRepo_FindStaleForUser(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	stale, err := repo.FindStaleForUser(ctx, userID, "2026-03-03")
	require.NoError(t, err)
	assert.Nil(t, stale)

	open := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "", testutil.Open())
	require.NoError(t, repo.Insert(ctx, open))

	// Same day is not stale.
	stale, err = repo.FindStaleForUser(ctx, userID, "2026-03-02")
	require.NoError(t, err)
	assert.Nil(t, stale)

	stale, err = repo.FindStaleForUser(ctx, userID, "2026-03-03")
	require.NoError(t, err)
	require.NotNil(t, stale)
	assert.Equal(t, open.ID, stale.ID)
}

func TestEntryRepo_QueryRange_OrderedByDateThenStart(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	later := testutil.NewTestEntry(userID, "2026-03-03", "09:00:00", "10:00:00")
	require.NoError(t, repo.Insert(ctx, later))
	early := testutil.NewTestEntry(userID, "2026-03-02", "13:00:00", "14:00:00")
	require.NoError(t, repo.Insert(ctx, early))
	earlier := testutil.NewTestEntry(userID, "2026-03-02", "08:00:00", "12:00:00")
	require.NoError(t, repo.Insert(ctx, earlier))
	outside := testutil.NewTestEntry(userID, "2026-03-10", "09:00:00", "10:00:00")
	require.NoError(t, repo.Insert(ctx, outside))

	entries, err := repo.QueryRange(ctx, userID, "2026-03-01", "2026-03-07")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, earlier.ID, entries[0].ID)
	assert.Equal(t, early.ID, entries[1].ID)
	assert.Equal(t, later.ID, entries[2].ID)
}

func TestEntryRepo_ListClosed_SkipsOpenEntries(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	closed := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "17:00:00")
	require.NoError(t, repo.Insert(ctx, closed))
	open := testutil.NewTestEntry(userID, "2026-03-03", "09:00:00", "", testutil.Open())
	require.NoError(t, repo.Insert(ctx, open))

	entries, err := repo.ListClosed(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, closed.ID, entries[0].ID)
}

func TestEntryRepo_StartBreak_PreconditionChecked(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	// No running entry: nothing to apply.
	applied, err := repo.StartBreak(ctx, userID, "2026-03-02", "10:00:00")
	require.NoError(t, err)
	assert.False(t, applied)

	open := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "", testutil.Open())
	require.NoError(t, repo.Insert(ctx, open))

	applied, err = repo.StartBreak(ctx, userID, "2026-03-02", "10:00:00")
	require.NoError(t, err)
	assert.True(t, applied)

	// Already on break: the conditional update must not apply twice.
	applied, err = repo.StartBreak(ctx, userID, "2026-03-02", "10:05:00")
	require.NoError(t, err)
	assert.False(t, applied)

	fetched, err := repo.GetByID(ctx, open.ID, userID)
	require.NoError(t, err)
	assert.True(t, fetched.IsOnBreak)
	require.NotNil(t, fetched.BreakStartedAt)
	assert.Equal(t, "10:00:00", *fetched.BreakStartedAt)
}

func TestEntryRepo_StopBreak_AccumulatesSeconds(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	open := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "", testutil.Open())
	require.NoError(t, repo.Insert(ctx, open))

	applied, err := repo.StartBreak(ctx, userID, "2026-03-02", "10:00:00")
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = repo.StopBreak(ctx, userID, "2026-03-02", "10:05:30")
	require.NoError(t, err)
	require.True(t, applied)

	fetched, err := repo.GetByID(ctx, open.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 330, fetched.BreakSeconds)
	assert.Equal(t, 5, fetched.BreakMinutes)
	assert.False(t, fetched.IsOnBreak)
	assert.Nil(t, fetched.BreakStartedAt)

	// Second stop has no break to finalize.
	applied, err = repo.StopBreak(ctx, userID, "2026-03-02", "10:06:00")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestEntryRepo_StopBreak_ClockSkewClampedToZero(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	open := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "", testutil.Open())
	require.NoError(t, repo.Insert(ctx, open))

	applied, err := repo.StartBreak(ctx, userID, "2026-03-02", "10:00:00")
	require.NoError(t, err)
	require.True(t, applied)

	// Stop "before" the break started: delta clamps to zero.
	applied, err = repo.StopBreak(ctx, userID, "2026-03-02", "09:59:00")
	require.NoError(t, err)
	require.True(t, applied)

	fetched, err := repo.GetByID(ctx, open.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.BreakSeconds)
	assert.Equal(t, 0, fetched.BreakMinutes)
}

func TestEntryRepo_Close_FinalizesOpenBreak(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	open := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "", testutil.Open())
	require.NoError(t, repo.Insert(ctx, open))

	applied, err := repo.StartBreak(ctx, userID, "2026-03-02", "12:00:00")
	require.NoError(t, err)
	require.True(t, applied)

	// Closing while on break folds the break up to the stop time.
	applied, err = repo.Close(ctx, open.ID, userID, "12:10:00")
	require.NoError(t, err)
	require.True(t, applied)

	fetched, err := repo.GetByID(ctx, open.ID, userID)
	require.NoError(t, err)
	require.NotNil(t, fetched.End)
	assert.Equal(t, "12:10:00", *fetched.End)
	assert.False(t, fetched.IsRunning)
	assert.False(t, fetched.IsOnBreak)
	assert.Nil(t, fetched.BreakStartedAt)
	assert.Equal(t, 600, fetched.BreakSeconds)
	assert.Equal(t, 10, fetched.BreakMinutes)

	// Closing again is a no-op: the entry is no longer open.
	applied, err = repo.Close(ctx, open.ID, userID, "13:00:00")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestEntryRepo_Update_PatchedEntryPersisted(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "17:00:00", testutil.WithBreak(30))
	require.NoError(t, repo.Insert(ctx, e))

	end := "16:00:00"
	e.End = &end
	e.BreakMinutes = 45
	e.BreakSeconds = 45 * 60
	require.NoError(t, repo.Update(ctx, e))

	fetched, err := repo.GetByID(ctx, e.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "16:00:00", *fetched.End)
	assert.Equal(t, 45, fetched.BreakMinutes)
}

func TestEntryRepo_Update_RejectsOverlap(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	morning := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "12:00:00")
	require.NoError(t, repo.Insert(ctx, morning))
	afternoon := testutil.NewTestEntry(userID, "2026-03-02", "13:00:00", "17:00:00")
	require.NoError(t, repo.Insert(ctx, afternoon))

	end := "14:00:00"
	morning.End = &end
	assert.ErrorIs(t, repo.Update(ctx, morning), domain.ErrConflict)

	// Unchanged after the rejected update.
	fetched, err := repo.GetByID(ctx, morning.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "12:00:00", *fetched.End)
}

func TestEntryRepo_DeleteByID(t *testing.T) {
	repo, userID := entryTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestEntry(userID, "2026-03-02", "09:00:00", "17:00:00")
	require.NoError(t, repo.Insert(ctx, e))

	deleted, err := repo.DeleteByID(ctx, e.ID, userID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByID(ctx, e.ID, userID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
