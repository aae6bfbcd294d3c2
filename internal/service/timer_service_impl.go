package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fhagedorn/stempel/internal/db"
	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/identity"
	"github.com/fhagedorn/stempel/internal/repository"
)

type timerService struct {
	entries  repository.EntryRepo
	users    repository.UserRepo
	uow      db.UnitOfWork
	who      identity.Resolver
	observer UseCaseObserver

	now func() time.Time
	loc *time.Location
}

// NewTimerService builds the session state machine over the given store.
// All wall-clock reads happen in loc.
func NewTimerService(entries repository.EntryRepo, users repository.UserRepo, uow db.UnitOfWork, who identity.Resolver, loc *time.Location, observers ...UseCaseObserver) TimerService {
	return newTimerService(entries, users, uow, who, loc, time.Now, observers...)
}

func newTimerService(entries repository.EntryRepo, users repository.UserRepo, uow db.UnitOfWork, who identity.Resolver, loc *time.Location, now func() time.Time, observers ...UseCaseObserver) *timerService {
	if loc == nil {
		loc = time.Local
	}
	return &timerService{
		entries:  entries,
		users:    users,
		uow:      uow,
		who:      who,
		observer: useCaseObserverOrNoop(observers),
		now:      now,
		loc:      loc,
	}
}

// today and clock render the current instant in the service's timezone.
func (s *timerService) today() string {
	return s.now().In(s.loc).Format(domain.DateLayout)
}

func (s *timerService) clock() string {
	return s.now().In(s.loc).Format(domain.ClockLayout)
}

func (s *timerService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *timerService) Start(ctx context.Context) (entry *domain.WorkEntry, err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "timer-start", startedAt, nil, err) }()

	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	today, start := s.today(), s.clock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)
		txUsers := repository.NewSQLiteUserRepo(tx)

		active, err := txEntries.FindActiveForUser(ctx, userID)
		if err != nil {
			return err
		}
		if active != nil {
			return fmt.Errorf("a session is already running since %s on %s: %w", active.Start, active.WorkDate, domain.ErrConflict)
		}

		// Baseline snapshot from the user's current settings.
		user, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		entry = &domain.WorkEntry{
			ID:                    uuid.New().String(),
			UserID:                userID,
			WorkDate:              today,
			Start:                 start,
			IsRunning:             true,
			BaselineDailyMinutes:  user.BaselineDailyMinutes,
			BaselineWeeklyMinutes: user.BaselineWeeklyMinutes,
			WorkdaysPerWeek:       user.WorkdaysPerWeek,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		return txEntries.Insert(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timerService) Stop(ctx context.Context) (entry *domain.WorkEntry, err error) {
	startedAt := time.Now().UTC()
	defer func() { s.observe(ctx, "timer-stop", startedAt, nil, err) }()

	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	today, now := s.today(), s.clock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		active, err := txEntries.FindActiveForDay(ctx, userID, today)
		if err != nil {
			return err
		}
		if active == nil {
			return fmt.Errorf("no session is running today: %w", domain.ErrConflict)
		}

		// Same-second stop (or clock skew): nudge the end forward so the
		// closed entry keeps a positive duration. A session started at
		// the day's last second has no room to nudge into; days never
		// span midnight, so it can only be discarded.
		end := now
		if end <= active.Start {
			end = domain.AddClockSecond(active.Start)
			if end <= active.Start {
				return fmt.Errorf("session started at %s leaves no room to stop today: %w", active.Start, domain.ErrConflict)
			}
		}

		applied, err := txEntries.Close(ctx, active.ID, userID, end)
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("session was already stopped: %w", domain.ErrConflict)
		}

		entry, err = txEntries.GetByID(ctx, active.ID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *timerService) StartBreak(ctx context.Context) (*domain.WorkEntry, error) {
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	applied, err := s.entries.StartBreak(ctx, userID, today, s.clock())
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("no running session to pause, or it is already on break: %w", domain.ErrConflict)
	}
	return s.entries.FindActiveForDay(ctx, userID, today)
}

func (s *timerService) StopBreak(ctx context.Context) (*domain.WorkEntry, error) {
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	applied, err := s.entries.StopBreak(ctx, userID, today, s.clock())
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("no break in progress: %w", domain.ErrConflict)
	}
	return s.entries.FindActiveForDay(ctx, userID, today)
}

func (s *timerService) Status(ctx context.Context) (*TimerStatus, error) {
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	active, err := s.entries.FindActiveForDay(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	stale, err := s.entries.FindStaleForUser(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	return &TimerStatus{Active: active, Stale: stale}, nil
}

func (s *timerService) FindStale(ctx context.Context) (*domain.WorkEntry, error) {
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.entries.FindStaleForUser(ctx, userID, s.today())
}

func (s *timerService) ResolveStale(ctx context.Context, action StaleAction) (entry *domain.WorkEntry, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"action": string(action)}
	defer func() { s.observe(ctx, "resolve-stale", startedAt, fields, err) }()

	if action != StaleStopEOD && action != StaleDiscard {
		return nil, fmt.Errorf("unknown stale action %q: %w", action, domain.ErrInvalidInput)
	}

	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		stale, err := txEntries.FindStaleForUser(ctx, userID, today)
		if err != nil {
			return err
		}
		if stale == nil {
			return fmt.Errorf("no stale session: %w", domain.ErrNotFound)
		}

		switch action {
		case StaleDiscard:
			deleted, err := txEntries.DeleteByID(ctx, stale.ID, userID)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("stale session vanished: %w", domain.ErrConflict)
			}
			entry = nil
			return nil

		default: // StaleStopEOD
			applied, err := txEntries.Close(ctx, stale.ID, userID, domain.EndOfDay)
			if err != nil {
				return err
			}
			if !applied {
				return fmt.Errorf("stale session vanished: %w", domain.ErrConflict)
			}
			entry, err = txEntries.GetByID(ctx, stale.ID, userID)
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
