/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The core only raises errors for malformed input; precedence rules
  (manual override wins) and missing ids in batch recompute are defined
  behavior, not errors.

USAGE:
  API handlers map these onto HTTP statuses:

    if schedule.IsNotFound(err) {
        writeError(w, http.StatusNotFound, ...)
    }

SEE ALSO:
  - time.go: ParseDate wraps ErrInvalidDate
  - repository.go: Repository implementations return the not-found sentinels
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date string cannot be parsed.
	// Unparseable input must never be treated as "never serviced".
	ErrInvalidDate = errors.New("invalid date")

	// ErrAreaNotFound is returned when a referenced service area doesn't exist.
	ErrAreaNotFound = errors.New("service area not found")

	// ErrEventNotFound is returned when a referenced mowing event doesn't exist.
	ErrEventNotFound = errors.New("mowing event not found")

	// ErrTeamNotFound is returned when a referenced team doesn't exist.
	ErrTeamNotFound = errors.New("team not found")

	// ErrNotBusinessDay is returned when a completion date fails
	// business-day validation (weekend or holiday).
	ErrNotBusinessDay = errors.New("date is not a business day")

	// ErrNoAreasSelected is returned when a batch registration carries no ids.
	ErrNoAreasSelected = errors.New("no areas selected")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError reports which value failed to parse and where.
type InvalidDateError struct {
	Field string // optional: which field carried the value
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid date %q in %s", e.Value, e.Field)
	}
	return fmt.Sprintf("invalid date %q", e.Value)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// NotBusinessDayError reports why a date was rejected.
type NotBusinessDayError struct {
	Date    Date
	Holiday string // holiday name, empty when rejected as a weekend
}

func (e *NotBusinessDayError) Error() string {
	if e.Holiday != "" {
		return fmt.Sprintf("%s is a holiday (%s)", e.Date, e.Holiday)
	}
	return fmt.Sprintf("%s falls on a weekend", e.Date)
}

func (e *NotBusinessDayError) Unwrap() error { return ErrNotBusinessDay }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAreaNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrTeamNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrNotBusinessDay) ||
		errors.Is(err, ErrNoAreasSelected)
}
