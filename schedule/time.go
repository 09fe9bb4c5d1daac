/*
time.go - Canonical date representation for the scheduler

PURPOSE:
  Upstream data arrives as ISO date strings, sometimes with time-of-day
  noise attached. Everything inside the scheduler operates on Date: a
  day-granularity value pinned to midnight UTC. Conversions happen once
  at the boundary (ParseDate / DateOf) so day-difference arithmetic never
  sees time zones or hours.

ABSENT vs INVALID:
  The zero Date means "absent" (an area that was never serviced, a
  forecast that was never computed). A malformed date string is NOT
  absent: ParseDate fails fast with ErrInvalidDate so bad input can never
  masquerade as "never serviced".

SEE ALSO:
  - calendar.go: Business-day arithmetic built on Date
  - calculator.go: Fixed-cycle forecast arithmetic
*/
package schedule

import (
	"time"
)

// dateLayout is the wire format for all dates in the system.
const dateLayout = "2006-01-02"

// Date is a calendar day. Internally normalized to midnight UTC.
// The zero value represents an absent date.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary timestamp to its calendar day.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string. A malformed string returns an
// error wrapping ErrInvalidDate; it is never silently treated as absent.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, &InvalidDateError{Value: s, Err: err}
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool {
	return d.Before(other) || d.Equal(other)
}
func (d Date) AfterOrEqual(other Date) bool {
	return d.After(other) || d.Equal(other)
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays returns the date n calendar days later (or earlier for n < 0).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the number of calendar days from d to other.
// Negative if other is before d.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// IsWeekend reports whether the day falls on a Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Time exposes the underlying midnight-UTC timestamp for storage layers.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// MarshalJSON renders the date as "YYYY-MM-DD", or null when absent.
// History entries are persisted as JSON, so Date must round-trip cleanly.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD", null, or "" (all empty forms mean absent).
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
