package repository

import (
	"fmt"
	"strings"

	"github.com/fhagedorn/stempel/internal/domain"
)

// mapConstraintErr classifies SQLite constraint violations into the domain
// error taxonomy. The overlap triggers abort with 'work entry overlap';
// the partial unique index and the CHECK constraints surface through the
// driver's standard constraint messages.
func mapConstraintErr(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "work entry overlap"):
		return fmt.Errorf("%s: entry overlaps an existing one: %w", op, domain.ErrConflict)
	case strings.Contains(msg, "UNIQUE constraint failed: work_entries"):
		return fmt.Errorf("%s: an open entry already exists: %w", op, domain.ErrConflict)
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
