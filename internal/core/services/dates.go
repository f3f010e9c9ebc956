package services

import (
	"fmt"
	"time"

	"github.com/propledger/property_ledger_app/internal/apperrors"
)

// parseISODate accepts dates as either a plain ISO date (2025-08-01) or a
// full RFC 3339 timestamp. An empty string yields the provided default.
func parseISODate(value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, value)
}
