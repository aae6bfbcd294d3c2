package repository

import (
	"context"

	"github.com/fhagedorn/stempel/internal/domain"
)

// EntryRepo is the durable store of work entries. Uniqueness of the open
// session and same-day non-overlap are enforced by the store itself; a
// violation surfaces as domain.ErrConflict and leaves no mutation behind.
//
// The Find* methods return (nil, nil) when no matching entry exists —
// absence of an active or stale session is a normal state, not an error.
//
// StartBreak, StopBreak, and Close are atomic state transitions: each is a
// single conditional UPDATE whose WHERE clause re-checks the state-machine
// precondition, so of two concurrent calls expecting the same transition
// exactly one observes applied == true.
type EntryRepo interface {
	Insert(ctx context.Context, e *domain.WorkEntry) error
	GetByID(ctx context.Context, id, userID string) (*domain.WorkEntry, error)
	Update(ctx context.Context, e *domain.WorkEntry) error
	DeleteByID(ctx context.Context, id, userID string) (bool, error)

	FindActiveForUser(ctx context.Context, userID string) (*domain.WorkEntry, error)
	FindActiveForDay(ctx context.Context, userID, date string) (*domain.WorkEntry, error)
	FindStaleForUser(ctx context.Context, userID, beforeDate string) (*domain.WorkEntry, error)

	QueryRange(ctx context.Context, userID, fromDate, toDate string) ([]*domain.WorkEntry, error)
	ListClosed(ctx context.Context, userID string) ([]*domain.WorkEntry, error)

	StartBreak(ctx context.Context, userID, date, at string) (applied bool, err error)
	StopBreak(ctx context.Context, userID, date, at string) (applied bool, err error)
	Close(ctx context.Context, id, userID, end string) (applied bool, err error)
}

// UserRepo stores users together with their current baseline
// configuration (the Baseline Provider).
type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	UpdateBaseline(ctx context.Context, id string, b domain.Baseline) error
}
