package domain

import "errors"

// Sentinel errors forming the application error taxonomy. Repositories and
// services wrap these with fmt.Errorf("context: %w", err) so callers can
// classify failures with errors.Is.
var (
	// ErrUnauthorized means no current user could be resolved.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means a referenced entry, user, or session is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a state-machine precondition no longer held at
	// commit time: a timer already running, no timer running, a break
	// already or not in progress, or an overlapping time interval. A
	// Conflict from the store guarantees no mutation occurred.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means malformed input was rejected before any
	// mutation was attempted.
	ErrInvalidInput = errors.New("invalid input")
)
