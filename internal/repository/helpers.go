package repository

import (
	"database/sql"
	"time"
)

// nullableStr converts a *string to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableStr(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// strPtr converts a scanned sql.NullString back to a *string.
func strPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339, used for the
// created_at/updated_at bookkeeping columns.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
