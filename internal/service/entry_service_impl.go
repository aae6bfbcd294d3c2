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

type entryService struct {
	entries repository.EntryRepo
	users   repository.UserRepo
	uow     db.UnitOfWork
	who     identity.Resolver

	now func() time.Time
}

func NewEntryService(entries repository.EntryRepo, users repository.UserRepo, uow db.UnitOfWork, who identity.Resolver) EntryService {
	return &entryService{entries: entries, users: users, uow: uow, who: who, now: time.Now}
}

func (s *entryService) Create(ctx context.Context, in EntryCreate) (*domain.WorkEntry, error) {
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	start, err := domain.NormalizeClock(in.Start)
	if err != nil {
		return nil, err
	}
	end, err := domain.NormalizeClock(in.End)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := &domain.WorkEntry{
		ID:           uuid.New().String(),
		UserID:       userID,
		WorkDate:     in.WorkDate,
		Start:        start,
		End:          &end,
		BreakMinutes: in.BreakMinutes,
		BreakSeconds: in.BreakMinutes * 60,
		Note:         in.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := entry.ValidateClosed(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)
		txUsers := repository.NewSQLiteUserRepo(tx)

		user, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		entry.BaselineDailyMinutes = user.BaselineDailyMinutes
		entry.BaselineWeeklyMinutes = user.BaselineWeeklyMinutes
		entry.WorkdaysPerWeek = user.WorkdaysPerWeek

		return txEntries.Insert(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Update merges the patch onto the stored entry and re-validates the
// result before writing. Open sessions are the timer's business and
// cannot be edited here.
func (s *entryService) Update(ctx context.Context, id string, patch domain.EntryPatch) (entry *domain.WorkEntry, err error) {
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEntries := repository.NewSQLiteEntryRepo(tx)

		entry, err = txEntries.GetByID(ctx, id, userID)
		if err != nil {
			return err
		}
		if entry.IsOpen() {
			return fmt.Errorf("entry %s is an open session, stop the timer first: %w", id, domain.ErrConflict)
		}

		if err := applyPatch(entry, patch); err != nil {
			return err
		}
		if err := entry.ValidateClosed(); err != nil {
			return err
		}
		entry.UpdatedAt = s.now().UTC()

		return txEntries.Update(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// applyPatch folds the non-nil patch fields into the entry, normalizing
// clock inputs. Break edits overwrite the second-precise accumulator;
// manual edits have minute granularity.
func applyPatch(e *domain.WorkEntry, p domain.EntryPatch) error {
	if p.WorkDate != nil {
		e.WorkDate = *p.WorkDate
	}
	if p.Start != nil {
		start, err := domain.NormalizeClock(*p.Start)
		if err != nil {
			return err
		}
		e.Start = start
	}
	if p.End != nil {
		end, err := domain.NormalizeClock(*p.End)
		if err != nil {
			return err
		}
		e.End = &end
	}
	if p.BreakMinutes != nil {
		e.BreakMinutes = *p.BreakMinutes
		e.BreakSeconds = *p.BreakMinutes * 60
	}
	if p.Note != nil {
		e.Note = p.Note
	}
	return nil
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.entries.DeleteByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *entryService) ListRange(ctx context.Context, fromDate, toDate string) ([]*domain.WorkEntry, error) {
	userID, err := s.who.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParseDate(fromDate); err != nil {
		return nil, err
	}
	if _, err := domain.ParseDate(toDate); err != nil {
		return nil, err
	}
	if toDate < fromDate {
		return nil, fmt.Errorf("range start %s after end %s: %w", fromDate, toDate, domain.ErrInvalidInput)
	}
	return s.entries.QueryRange(ctx, userID, fromDate, toDate)
}
