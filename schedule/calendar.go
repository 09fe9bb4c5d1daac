/*
calendar.go - Business-day calendar with Brazilian national and Londrina
municipal holidays

PURPOSE:
  Classifies calendar dates as holiday / weekend / business day and
  supports business-day arithmetic. The forecast itself is pure calendar
  days (see calculator.go); the business-day predicate serves completion
  date validation and UI date math.

HOLIDAY SET (13 per year):
  9 fixed national, 1 fixed municipal (Aniversário de Londrina, Dec 10),
  and 3 Easter-relative dates: Carnaval (Easter-47), Sexta-feira Santa
  (Easter-2) and Corpus Christi (Easter+60). Easter via the
  Meeus/Jones/Butcher Gregorian algorithm; no external dependency.

CACHING:
  Holidays are pure per year and looked up heavily, so the Calendar
  keeps a year -> holiday-set cache behind an RWMutex. Entries are
  immutable once written; a cold-cache race where two goroutines compute
  the same year is harmless because both write identical values.

SEE ALSO:
  - time.go: Date value type
  - api/handlers.go: /api/holidays and /api/calendar endpoints
*/
package schedule

import (
	"sort"
	"sync"
	"time"
)

// HolidayKind distinguishes national from municipal holidays.
type HolidayKind string

const (
	HolidayNational  HolidayKind = "national"
	HolidayMunicipal HolidayKind = "municipal"
)

// Holiday is a single non-working day. Derived per year, never persisted.
type Holiday struct {
	Date Date
	Name string
	Kind HolidayKind
}

// Calendar answers business-day questions. Safe for concurrent use.
// Construct one per process and share it; the cache is the only state.
type Calendar struct {
	mu    sync.RWMutex
	years map[int]yearHolidays
}

type yearHolidays struct {
	ordered []Holiday
	byDate  map[Date]Holiday
}

// NewCalendar creates a Calendar with an empty cache.
func NewCalendar() *Calendar {
	return &Calendar{years: make(map[int]yearHolidays)}
}

// EasterDate computes Easter Sunday for a year using the
// Meeus/Jones/Butcher algorithm for the Gregorian calendar.
func EasterDate(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return NewDate(year, time.Month(month), day)
}

// generateHolidays builds the full holiday list for a year, ordered by date.
func generateHolidays(year int) []Holiday {
	easter := EasterDate(year)

	holidays := []Holiday{
		{NewDate(year, time.January, 1), "Ano Novo", HolidayNational},
		{NewDate(year, time.April, 21), "Tiradentes", HolidayNational},
		{NewDate(year, time.May, 1), "Dia do Trabalhador", HolidayNational},
		{NewDate(year, time.September, 7), "Independência do Brasil", HolidayNational},
		{NewDate(year, time.October, 12), "Nossa Senhora Aparecida", HolidayNational},
		{NewDate(year, time.November, 2), "Finados", HolidayNational},
		{NewDate(year, time.November, 15), "Proclamação da República", HolidayNational},
		{NewDate(year, time.November, 20), "Consciência Negra", HolidayNational},
		{NewDate(year, time.December, 25), "Natal", HolidayNational},
		{NewDate(year, time.December, 10), "Aniversário de Londrina", HolidayMunicipal},
		{easter.AddDays(-47), "Carnaval", HolidayNational},
		{easter.AddDays(-2), "Sexta-feira Santa", HolidayNational},
		{easter.AddDays(60), "Corpus Christi", HolidayNational},
	}

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// forYear returns the cached holiday set for a year, computing it on miss.
func (c *Calendar) forYear(year int) yearHolidays {
	c.mu.RLock()
	yh, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return yh
	}

	ordered := generateHolidays(year)
	byDate := make(map[Date]Holiday, len(ordered))
	for _, h := range ordered {
		byDate[h.Date] = h
	}
	yh = yearHolidays{ordered: ordered, byDate: byDate}

	c.mu.Lock()
	c.years[year] = yh
	c.mu.Unlock()
	return yh
}

// HolidaysForYear returns all holidays of a year, ordered by date.
func (c *Calendar) HolidaysForYear(year int) []Holiday {
	yh := c.forYear(year)
	out := make([]Holiday, len(yh.ordered))
	copy(out, yh.ordered)
	return out
}

// HolidayOn returns the holiday falling on a date, if any.
func (c *Calendar) HolidayOn(d Date) (Holiday, bool) {
	h, ok := c.forYear(d.Year()).byDate[d]
	return h, ok
}

// IsHoliday reports whether a date is a national or municipal holiday.
func (c *Calendar) IsHoliday(d Date) bool {
	_, ok := c.HolidayOn(d)
	return ok
}

// IsBusinessDay reports whether a date is neither a weekend nor a holiday.
func (c *Calendar) IsBusinessDay(d Date) bool {
	return !d.IsWeekend() && !c.IsHoliday(d)
}

// AddBusinessDays walks forward one calendar day at a time until n
// business days have passed. O(n) is fine: n is always a small
// days-to-complete figure, never a long-range scan.
func (c *Calendar) AddBusinessDays(start Date, n int) Date {
	result := start
	for added := 0; added < n; {
		result = result.AddDays(1)
		if c.IsBusinessDay(result) {
			added++
		}
	}
	return result
}

// BusinessDaysBetween counts business days in the inclusive range
// [start, end]. Returns 0 when end is before start.
func (c *Calendar) BusinessDaysBetween(start, end Date) int {
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if c.IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// NextBusinessDay returns the first business day strictly after d.
func (c *Calendar) NextBusinessDay(d Date) Date {
	result := d.AddDays(1)
	for !c.IsBusinessDay(result) {
		result = result.AddDays(1)
	}
	return result
}
