package service

import (
	"context"

	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/overtime"
)

// StaleAction is the recovery choice for a session left open past its day.
type StaleAction string

const (
	StaleStopEOD StaleAction = "stop_eod"
	StaleDiscard StaleAction = "discard"
)

// TimerStatus is the combined live view: today's running session (nil
// when idle) and a forgotten open session from an earlier day (nil when
// none).
type TimerStatus struct {
	Active *domain.WorkEntry
	Stale  *domain.WorkEntry
}

// TimerService is the per-user session state machine. All state
// transitions fail with domain.ErrConflict when their precondition does
// not hold at commit time; a Conflict means nothing was mutated.
type TimerService interface {
	Start(ctx context.Context) (*domain.WorkEntry, error)
	Stop(ctx context.Context) (*domain.WorkEntry, error)
	StartBreak(ctx context.Context) (*domain.WorkEntry, error)
	StopBreak(ctx context.Context) (*domain.WorkEntry, error)
	Status(ctx context.Context) (*TimerStatus, error)

	FindStale(ctx context.Context) (*domain.WorkEntry, error)
	ResolveStale(ctx context.Context, action StaleAction) (*domain.WorkEntry, error)
}

// EntryCreate is the input for a manually created (closed) entry. Times
// accept HH:MM or HH:MM:SS.
type EntryCreate struct {
	WorkDate     string
	Start        string
	End          string
	BreakMinutes int
	Note         *string
}

// EntryService manages closed entries directly: manual creation, partial
// edits, deletion, and range listing. Open sessions belong to the timer.
type EntryService interface {
	Create(ctx context.Context, in EntryCreate) (*domain.WorkEntry, error)
	Update(ctx context.Context, id string, patch domain.EntryPatch) (*domain.WorkEntry, error)
	Delete(ctx context.Context, id string) error
	ListRange(ctx context.Context, fromDate, toDate string) ([]*domain.WorkEntry, error)
}

// SettingsService reads and updates the acting user's baseline.
type SettingsService interface {
	Get(ctx context.Context) (domain.Baseline, error)
	Update(ctx context.Context, b domain.Baseline) (domain.Baseline, error)
}

// UserService registers users. Registration happens before an identity
// exists, so it takes the name directly instead of using the resolver.
type UserService interface {
	Register(ctx context.Context, name string) (*domain.User, error)
}

// StatsService aggregates the user's closed entries into the overtime
// report.
type StatsService interface {
	Overview(ctx context.Context) (*overtime.Report, error)
}
