package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/holiday"
	"github.com/fhagedorn/stempel/internal/identity"
	"github.com/fhagedorn/stempel/internal/overtime"
	"github.com/fhagedorn/stempel/internal/repository"
)

type statsService struct {
	entries  repository.EntryRepo
	holidays holiday.Provider
	who      identity.Resolver
	observer UseCaseObserver

	now func() time.Time
	loc *time.Location
}

// NewStatsService builds the read-only overtime aggregation over the
// entry store and the holiday provider.
func NewStatsService(entries repository.EntryRepo, holidays holiday.Provider, who identity.Resolver, loc *time.Location, observers ...UseCaseObserver) StatsService {
	return newStatsService(entries, holidays, who, loc, time.Now, observers...)
}

func newStatsService(entries repository.EntryRepo, holidays holiday.Provider, who identity.Resolver, loc *time.Location, now func() time.Time, observers ...UseCaseObserver) *statsService {
	if loc == nil {
		loc = time.Local
	}
	return &statsService{
		entries:  entries,
		holidays: holidays,
		who:      who,
		observer: useCaseObserverOrNoop(observers),
		now:      now,
		loc:      loc,
	}
}

func (s *statsService) Overview(ctx context.Context) (report *overtime.Report, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "stats-overview",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	// One query, one consistent snapshot of the closed entries.
	entries, err := s.entries.ListClosed(ctx, userID)
	if err != nil {
		return nil, err
	}
	fields["entry_count"] = len(entries)

	today := s.now().In(s.loc)
	if len(entries) == 0 {
		return &overtime.Report{}, nil
	}

	// The holiday range spans from the first entry's week to the end of
	// the current week; entries come back ordered by date.
	firstDay, err := time.ParseInLocation(domain.DateLayout, entries[0].WorkDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("entry %s: bad work date %q: %w", entries[0].ID, entries[0].WorkDate, err)
	}
	from := overtime.WeekStart(firstDay).Format(domain.DateLayout)
	to := overtime.WeekStart(today).AddDate(0, 0, 6).Format(domain.DateLayout)

	// A provider failure fails the whole computation; silently missing
	// credits would be worse than an explicit error.
	holidays, err := s.holidays.HolidaysInRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("loading holidays %s..%s: %w", from, to, err)
	}

	result, err := overtime.Compute(entries, holidays, today)
	if err != nil {
		return nil, err
	}
	fields["weeks"] = result.WeeksCount
	return &result, nil
}
